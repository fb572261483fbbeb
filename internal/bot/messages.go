package bot

import "errors"

// User-facing message texts.
const (
	msgNotText            = "I can only work with plain text messages."
	msgUnknownCurrency    = "Unknown currency code."
	msgInvalidDate        = "I couldn't make out the date."
	msgDateInFuture       = "That date is still in the future."
	msgNoData             = "No exchange rate data for that date."
	msgServiceUnavailable = "The rate service is unavailable right now. Please try again later."

	msgInstruction = "Send me a currency code and a date, for example:\n" +
		"<code>USD 16.05.2021</code>\n" +
		"Accepted date formats: 16.05.2021, 05-16-2021, 2021-05-16, 16/05/2021."
)

// replyTemplate formats the successful answer: date, target code, inverted
// rate, base code. The double space before the rate is part of the fixed
// reply shape.
const replyTemplate = "%s, 1 %s =  %s %s"

// replyDateLayout renders dates in replies the way queries usually spell
// them.
const replyDateLayout = "02.01.2006"

// rejectionMessage maps a parse rejection to its user-facing text.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotText):
		return msgNotText
	case errors.Is(err, ErrUnknownCurrencyCode):
		return msgUnknownCurrency
	case errors.Is(err, ErrDateInFuture):
		return msgDateInFuture
	default:
		return msgInvalidDate
	}
}
