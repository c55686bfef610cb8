package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func couponData() CouponEmailData {
	return CouponEmailData{
		RedemptionCode: "RDM-SF3K2A-7Q1Z",
		AdvantageTitle: "Free espresso",
		CompanyName:    "Campus Coffee",
		CostCoins:      30,
		StudentName:    "Ana Souza",
		CreatedAt:      time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestCouponSubject(t *testing.T) {
	assert.NotEqual(t, CouponSubject(true), CouponSubject(false))
}

func TestCouponText(t *testing.T) {
	student := CouponText(couponData(), true)
	assert.Contains(t, student, "RDM-SF3K2A-7Q1Z")
	assert.Contains(t, student, "Free espresso")
	assert.Contains(t, student, "Campus Coffee")
	assert.Contains(t, student, "30 coins")
	assert.Contains(t, student, "01/03/2026 14:30")

	company := CouponText(couponData(), false)
	assert.Contains(t, company, "RDM-SF3K2A-7Q1Z")
	assert.Contains(t, company, "Ana Souza", "company copy names the student")
	assert.NotContains(t, student, "Ana Souza", "student copy does not repeat their own name")
}

func TestCouponHTML(t *testing.T) {
	html := CouponHTML(couponData(), true)
	assert.Contains(t, html, "RDM-SF3K2A-7Q1Z")
	assert.Contains(t, html, "<html>")

	company := CouponHTML(couponData(), false)
	assert.Contains(t, company, "Ana Souza")
}

func TestTransferText(t *testing.T) {
	body := TransferText(150, "prof@uni.edu", "Great presentation")
	assert.Contains(t, body, "150 coins")
	assert.Contains(t, body, "prof@uni.edu")
	assert.Contains(t, body, "Great presentation")
}
