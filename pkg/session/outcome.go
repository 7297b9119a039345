package session

// SendOutcome is the result of a test send as reported to the user.
type SendOutcome int

const (
	OutcomeFailure SendOutcome = iota
	OutcomeSuccess
	OutcomeRateLimited
)

func (o SendOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRateLimited:
		return "rate_limited"
	default:
		return "failure"
	}
}

const (
	titleSuccess     = "Success"
	titleRateLimited = "Too many requests"
	titleError       = "Error"

	messageSent          = "Email sent successfully."
	messageGenericError  = "Something went wrong. Please try again."
	messageRateLimited   = "Please wait before sending another email."
	messageRenderFailed  = "Failed to render the template."
	messageCatalogFailed = "Failed to load templates."
)
