package http

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName reports request fields by their wire name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func fieldError(c *gin.Context, status int, message, field, constraint string) {
	c.JSON(status, gin.H{
		"error":      message,
		"field":      field,
		"constraint": constraint,
	})
}

func handleError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		fieldError(c, http.StatusBadRequest, ve.Message, ve.Field, ve.Constraint)
	case errors.Is(err, domain.ErrInvalidDayIndex):
		fieldError(c, http.StatusBadRequest, err.Error(), "day", "range=0-6")
	case errors.Is(err, domain.ErrIndexOutOfRange):
		fieldError(c, http.StatusBadRequest, err.Error(), "index", "in_range")
	case errors.Is(err, domain.ErrInvalidUsername):
		fieldError(c, http.StatusBadRequest, err.Error(), "username", "alphanum,min=3,max=20")
	case errors.Is(err, domain.ErrPasswordTooShort):
		fieldError(c, http.StatusBadRequest, err.Error(), "password", "min=8")
	case errors.Is(err, domain.ErrRoutineNotFound),
		errors.Is(err, domain.ErrCompletionNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateRoutineID),
		errors.Is(err, domain.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindJSON decodes the body into obj and writes a 400 on failure. An empty
// body is accepted when allowEmpty is set.
func bindJSON(c *gin.Context, obj any, allowEmpty bool) bool {
	if allowEmpty && (c.Request.Body == nil || c.Request.Body == http.NoBody) {
		return true
	}
	err := c.ShouldBindJSON(obj)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	bindError(c, err)
	return false
}

func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		bindError(c, err)
		return false
	}
	return true
}

func bindError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		handleError(c, ve)
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		constraint := fe.Tag()
		if fe.Param() != "" {
			constraint += "=" + fe.Param()
		}
		fieldError(c, http.StatusBadRequest, field+" failed on "+constraint, field, constraint)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return "", false
	}
	return userID, true
}
