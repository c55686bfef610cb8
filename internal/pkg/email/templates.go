package email

import (
	"fmt"
	"time"
)

// CouponEmailData carries the fields rendered into redemption notifications.
type CouponEmailData struct {
	RedemptionCode string
	AdvantageTitle string
	CompanyName    string
	CostCoins      int64
	StudentName    string
	CreatedAt      time.Time
}

// CouponSubject returns the subject line for a redemption notification.
func CouponSubject(forStudent bool) string {
	if forStudent {
		return "Your redemption coupon - Academic Merit System"
	}
	return "An advantage of yours was redeemed - Academic Merit System"
}

// CouponText renders the plain-text body of a redemption notification.
func CouponText(data CouponEmailData, forStudent bool) string {
	when := data.CreatedAt.Format("02/01/2006 15:04")
	if forStudent {
		return fmt.Sprintf(
			"You redeemed the advantage %q from %s for %d coins on %s.\n\nPresent this coupon code to claim it: %s\n",
			data.AdvantageTitle, data.CompanyName, data.CostCoins, when, data.RedemptionCode)
	}
	return fmt.Sprintf(
		"Student %s redeemed your advantage %q for %d coins on %s.\n\nCoupon code: %s\n",
		data.StudentName, data.AdvantageTitle, data.CostCoins, when, data.RedemptionCode)
}

// CouponHTML renders the HTML body of a redemption notification.
func CouponHTML(data CouponEmailData, forStudent bool) string {
	intro := fmt.Sprintf("You redeemed <strong>%s</strong> from %s.", data.AdvantageTitle, data.CompanyName)
	if !forStudent {
		intro = fmt.Sprintf("Student %s redeemed your advantage <strong>%s</strong>.", data.StudentName, data.AdvantageTitle)
	}

	return fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #4CAF50;">Redemption Coupon</h2>
				<p>%s</p>
				<div style="background-color: #667eea; color: white; padding: 20px; border-radius: 8px; text-align: center; font-size: 28px; font-weight: bold; letter-spacing: 3px; margin: 30px 0;">%s</div>
				<p>Cost: <strong>%d coins</strong><br>Date: %s</p>
				<p>Best regards,<br>The Academic Merit System</p>
			</div>
		</body>
		</html>
	`, intro, data.RedemptionCode, data.CostCoins, data.CreatedAt.Format("02/01/2006 15:04"))
}

// TransferSubject is the subject line for a coin-transfer notification.
const TransferSubject = "You received coins in the Academic Merit System"

// TransferText renders the plain-text body of a coin-transfer notification.
func TransferText(amount int64, fromEmail, reason string) string {
	return fmt.Sprintf("You received %d coins from professor %s.\n\nReason: %s", amount, fromEmail, reason)
}
