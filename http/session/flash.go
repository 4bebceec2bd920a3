package session

import (
	"net/http"
)

const (
	// Default Flash Class
	FlashDanger  = "danger"
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"

	// Default Flash Msg
	BadInputMsg     = "Hmm... check your form, something isn't correct."
	DefaultErrMsg   = "Uh oh! We've run into an issue."
	LoggedOutMsg    = "You have been logged out."
	NoAccessMsg     = "Oops, sending you back somewhere safe."
	SignInFailMsg   = "We were unable to sign you in. Please try again."
	SignInMsg       = "Welcome back!"
	UploadErrMsg    = "There was a problem with your upload."
	UploadOkMsg     = "Your files have been uploaded."
	ContactUsErrFmt = DefaultErrMsg + " Please contact us at %s if the issue persists."
)

// The FlashSessionable wraps reading and writing one-shot messages to a session.
type FlashSessionable interface {
	Flashes(w http.ResponseWriter, r *http.Request) []Flash
	SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error
}

// A Flash is a message shown to the user on the next page they view.
// Class matches a Bootstrap alert contextual class.
type Flash struct {
	Class string `json:"class"`
	Msg   string `json:"msg"`
}

// Danger constructs a Flash with FlashDanger.
func Danger(msg string) Flash { return Flash{Class: FlashDanger, Msg: msg} }

// Info constructs a Flash with FlashInfo.
func Info(msg string) Flash { return Flash{Class: FlashInfo, Msg: msg} }

// Success constructs a Flash with FlashSuccess.
func Success(msg string) Flash { return Flash{Class: FlashSuccess, Msg: msg} }

// Warning constructs a Flash with FlashWarning.
func Warning(msg string) Flash { return Flash{Class: FlashWarning, Msg: msg} }
