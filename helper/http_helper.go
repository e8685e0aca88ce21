package helper

import (
	"errors"
	"net/http"

	"pollsite/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	textError = `error`
	textOk    = `ok`
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  interface{}
	Data     interface{}
	Code     int
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewHTTPHelper builds a helper with an english translator registered for
// the validator's default messages.
func NewHTTPHelper() (*HTTPHelper, error) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &HTTPHelper{
		Validate:   validate,
		Translator: trans,
	}, nil
}

// GetStatusCode ...
// Map a service error to the HTTP status sent to consumers.
func (u *HTTPHelper) GetStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidSubmission), errors.Is(err, models.ErrInvalidLimit):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrUserExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func codeType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return `badRequest`
	case http.StatusUnauthorized:
		return `unAuthorized`
	case http.StatusForbidden:
		return `forbidden`
	case http.StatusNotFound:
		return `notFound`
	case http.StatusConflict:
		return `conflict`
	default:
		return `internalServerError`
	}
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message interface{}, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, message interface{}, data interface{}, code int, codeType string) error {
	res := u.SetResponse(c, textError, message, data, code, codeType)

	return u.SendResponse(res)
}

// SendServiceError ...
// Send the envelope matching a service error. Internal errors are not echoed.
func (u *HTTPHelper) SendServiceError(c *gin.Context, err error) error {
	status := u.GetStatusCode(err)

	message := err.Error()
	switch {
	case errors.Is(err, models.ErrInvalidSubmission):
		message = models.NoChoiceSelectedMessage
	case status == http.StatusInternalServerError:
		_ = c.Error(err)
		message = http.StatusText(status)
	}

	return u.SendError(c, message, u.EmptyJsonMap(), status, codeType(status))
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusBadRequest, `badRequest`)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) error {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := Underscore(err.StructField())
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	return u.SendError(c, errorResponse, u.EmptyJsonMap(), http.StatusBadRequest, `validationError`)
}

// ValidateRequest runs struct validation and writes the error response when
// it fails. It reports whether the request may proceed.
func (u *HTTPHelper) ValidateRequest(c *gin.Context, req interface{}) bool {
	err := u.Validate.Struct(req)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		u.SendValidationError(c, validationErrors)
	} else {
		u.SendBadRequest(c, err.Error(), u.EmptyJsonMap())
	}
	return false
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusUnauthorized, `unAuthorized`)
}

// SendForbiddenError ...
func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusForbidden, `forbidden`)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusNotFound, `notFound`)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, http.StatusOK, `success`)

	return u.SendResponse(res)
}

// SendCreated ...
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, http.StatusCreated, `created`)

	return u.SendResponse(res)
}

// SendResponse ...
// Send response. The HTTP status follows the envelope code.
func (u *HTTPHelper) SendResponse(res ResponseHelper) error {
	if s, ok := res.Message.(string); ok && len(s) == 0 {
		res.Message = `success`
	}

	resCode := res.Code
	if http.StatusText(resCode) == "" {
		resCode = http.StatusInternalServerError
	}

	res.C.JSON(resCode, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
	return nil
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}
