package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"OwlTurf/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const validationMessage = "Validation error in request data"

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator.
// It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("api: gin validator engine is not go-playground/validator")
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
		if err := v.RegisterValidation("clock", validClock); err != nil {
			panic(err)
		}
	})
}

// validClock accepts 24h "HH:MM".
func validClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// bindJSON decodes and validates the body; on failure it answers 422.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortValidation(c, "body", err)
		return false
	}
	return true
}

// bindQuery decodes and validates query parameters; on failure it answers 422.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		abortValidation(c, "query", err)
		return false
	}
	return true
}

func abortValidation(c *gin.Context, location string, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"detail":  validationDetail(location, err),
		"message": validationMessage,
	})
}

func missingField(c *gin.Context, location, field string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"detail": []gin.H{{
			"loc":  []string{location, field},
			"msg":  "field required",
			"type": "value_error.missing",
		}},
		"message": validationMessage,
	})
}

func validationDetail(location string, err error) []gin.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, gin.H{
				"loc":  fieldLocation(location, fe),
				"msg":  ruleMessage(fe),
				"type": "value_error." + fe.Tag(),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []gin.H{{
			"loc":  []string{location, typeErr.Field},
			"msg":  fmt.Sprintf("expected %s", typeErr.Type.String()),
			"type": "type_error",
		}}
	}
	if errors.Is(err, io.EOF) {
		return []gin.H{{"loc": []string{location}, "msg": "request body is required", "type": "value_error.missing"}}
	}
	return []gin.H{{"loc": []string{location}, "msg": err.Error(), "type": "value_error"}}
}

func fieldLocation(location string, fe validator.FieldError) []string {
	return []string{location, fe.Field()}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "oneof":
		return "value is not one of: " + fe.Param()
	case "clock":
		return "must be a time in HH:MM format"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "email":
		return "value is not a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " item(s) or characters"
	case "max":
		return "must have at most " + fe.Param() + " item(s) or characters"
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

type pageQuery struct {
	Skip  int `form:"skip" binding:"gte=0"`
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

func (q pageQuery) page() repository.Page {
	return repository.Page{Skip: q.Skip, Limit: q.Limit}
}
