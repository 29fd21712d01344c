package errors

// User-friendly error messages
const (
	MsgMissingAddress    = "Address is required. Provide \"address\" or \"Lot Number / Address\"."
	MsgStoreUnavailable  = "The record store is unavailable right now. Please try again in a few minutes."
	MsgNotFound          = "Address not found."
	MsgInvalidID         = "The provided record id is not valid."
	MsgUpstreamGeocode   = "Geocoding failed. Please try again later."
	MsgRateLimited       = "You're sending requests too quickly! Please wait a moment and try again."
	MsgInvalidParameters = "The provided parameters are invalid. Please check your input and try again."
	MsgInternalError     = "Something went wrong on our end. Please try again later."
)
