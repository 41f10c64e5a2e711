package notifier

import (
	"fmt"
	"html"
)

// mentorRequestHTML renders the mentor notification email. Every free-text
// field is HTML-escaped; the payload comes straight from a public form.
func mentorRequestHTML(mentorName, menteeName, menteeEmail, menteeAvailability, message string) string {
	mentorName = html.EscapeString(mentorName)
	menteeName = html.EscapeString(menteeName)
	menteeEmail = html.EscapeString(menteeEmail)
	menteeAvailability = html.EscapeString(menteeAvailability)
	message = html.EscapeString(message)

	return fmt.Sprintf(`
          <h2>New Mentorship Request</h2>
          <p>Hello %s,</p>
          <p>You have received a new mentorship request!</p>

          <h3>Mentee Information:</h3>
          <p><strong>Name:</strong> %s</p>
          <p><strong>Email:</strong> %s</p>
          <p><strong>Availability:</strong> %s</p>

          <h3>What they want to get out of this mentorship:</h3>
          <p>%s</p>

          <p>You can contact them directly at: %s</p>

          <hr>
          <p><small>CyberMentor ME - Middle East Cybersecurity Mentorship Platform</small></p>
        `, mentorName, menteeName, menteeEmail, menteeAvailability, message, menteeEmail)
}

// loginLinkHTML renders the moderator one-time login email.
func loginLinkHTML(moderatorName, loginURL string) string {
	moderatorName = html.EscapeString(moderatorName)
	loginURL = html.EscapeString(loginURL)

	return fmt.Sprintf(`
          <h2>Moderator Login</h2>
          <p>Hello %s,</p>
          <p>Use the link below to sign in to the moderation console. The link expires shortly and can be used once.</p>
          <p><a href="%s">Sign in</a></p>
          <p>If you did not request this, you can ignore this email.</p>

          <hr>
          <p><small>CyberMentor ME - Middle East Cybersecurity Mentorship Platform</small></p>
        `, moderatorName, loginURL)
}
