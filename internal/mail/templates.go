package mail

import "html/template"

var (
	verificationTemplate = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Verify Your Email</h2>
  <p>Thanks for joining Trivia Pro! Confirm your email address to finish setting up your account.</p>
  <p><a href="{{.URL}}" style="display: inline-block; padding: 10px 20px; background: #4a6cf7; color: #fff; text-decoration: none; border-radius: 4px;">Verify Email</a></p>
  <p>If the button does not work, open this link: {{.URL}}</p>
  <p>If you did not create an account with {{.Email}}, you can ignore this message.</p>
</body>
</html>`))

	passwordResetTemplate = template.Must(template.New("password-reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Reset Your Password</h2>
  <p>We received a request to reset the password for {{.Email}}.</p>
  <p><a href="{{.URL}}" style="display: inline-block; padding: 10px 20px; background: #4a6cf7; color: #fff; text-decoration: none; border-radius: 4px;">Reset Password</a></p>
  <p>This link expires in one hour. If you did not request a reset, ignore this message and your password will stay unchanged.</p>
</body>
</html>`))

	welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Welcome to Trivia Pro, {{.Name}}!</h2>
  <p>Your email is verified and your account is ready. Jump in and start climbing the leaderboard.</p>
</body>
</html>`))
)
