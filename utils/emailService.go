package utils

import (
	"fmt"
	"log"
	"net/smtp"

	"lms/config"
)

const (
	smtpHost = "smtp.gmail.com"
	smtpPort = "587"
)

// SendAssignmentEmail sends an email notification when a student is
// assigned to a course.
func SendAssignmentEmail(email, courseName string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword
	if from == "" {
		log.Println("Email sender not configured, skipping assignment email.")
		return nil
	}

	to := []string{email}

	subject := "Subject: New Course Assigned\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">New Course Assigned</h2>
					<p style="font-size: 16px; color: #555555;">Your mentor has assigned you to:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">Complete the chapters in order to finish the course and earn your certificate.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Happy Learning!</p>
				</div>
			</body>
		</html>
	`, courseName)

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		log.Printf("Error sending assignment email: %v", err)
		return err
	}

	log.Println("Assignment email sent successfully to", email)
	return nil
}

// SendCertificateEmail sends a notification when a certificate is issued
// for the first time.
func SendCertificateEmail(email, courseName, serialNumber string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword
	if from == "" {
		log.Println("Email sender not configured, skipping certificate email.")
		return nil
	}

	to := []string{email}

	subject := "Subject: Course Completion Certificate\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Certificate of Completion</h2>
					<p style="font-size: 16px; color: #555555;">Congratulations on completing:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
						<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Certificate Number:</p>
						<h2 style="color: #2196F3; margin: 0;">%s</h2>
					</div>
					<p style="font-size: 14px; color: #666666;">You can download your certificate from the platform at any time.</p>
				</div>
			</body>
		</html>
	`, courseName, serialNumber)

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		log.Printf("Error sending certificate email: %v", err)
		return err
	}

	log.Println("Certificate email sent successfully to", email)
	return nil
}
