package domain

type Intent string

const (
	IntentBooking  Intent = "booking"
	IntentDiscount Intent = "discount"
	IntentPolicy   Intent = "policy"
	IntentStaff    Intent = "staff"
	IntentGeneral  Intent = "general_enquiry"
)
