package payments

// User-facing texts for provider error names. The provider reports machine
// names (VALIDATION_FAILED, ...); shoppers get a general prefix plus the
// specific text, composed as "general: specific".

const generalErrorText = "Your payment could not be processed"

var errorNameTexts = map[string]string{
	"3DS_AUTHENTICATION_FAILED":  "The 3-D Secure verification failed. Please try again.",
	"BLOCKED_BY_RISK_MANAGEMENT": "The payment was declined by risk management.",
	"CARD_CHECK_FAILED":          "The card details could not be verified.",
	"CARD_CVC_INVALID":           "The card verification code is not valid.",
	"TRANSACTION_ABORTED":        "The payment was aborted.",
	"TRANSACTION_DECLINED":       "The payment was declined.",
	"TOKEN_EXPIRED":              "The payment session expired. Please start over.",
	"TOKEN_INVALID":              "The payment session is not valid. Please start over.",
	"VALIDATION_FAILED":          "The payment request could not be validated.",
	saferpayTransportErrorName:   "The payment provider could not be reached.",
}

const saferpayTransportErrorName = "TRANSPORT_ERROR"

const unknownErrorText = "An unknown error occurred."

// UserFacingError composes the shopper message for a provider error name.
func UserFacingError(errorName string) string {
	specific, ok := errorNameTexts[errorName]
	if !ok {
		specific = unknownErrorText
	}
	return generalErrorText + ": " + specific
}

// LiabilityShiftMessage explains a rejected payment whose liability was not
// shifted to the issuer.
const LiabilityShiftMessage = "The payment was rejected because liability was not shifted to the card issuer. Please try another payment method."
