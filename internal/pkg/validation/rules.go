package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation tags registered with the request binder
const (
	TagCourseID = "courseid"
)

// Course id rule: subject tokens followed by a number with an optional
// letter suffix, spaced or not ("MATH 221", "COMPSCI537", "CHICLA/SPANISH 222").
var (
	CourseIDPattern   = `^[A-Za-z][A-Za-z&/ ]*\s*\d+[A-Za-z]?$`
	CourseIDMaxLength = 64
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	CourseID *regexp.Regexp
}{
	CourseID: regexp.MustCompile(CourseIDPattern),
}

// IsCourseID reports whether s looks like a single course identifier
func IsCourseID(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && len(s) <= CourseIDMaxLength && CompiledPatterns.CourseID.MatchString(s)
}

func courseIDRule(fl validator.FieldLevel) bool {
	return IsCourseID(fl.Field().String())
}

// Register adds the custom rules to v
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagCourseID, courseIDRule); err != nil {
		return fmt.Errorf("register %s rule: %w", TagCourseID, err)
	}
	return nil
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterBindingRules registers the custom rules with gin's default
// validator. Safe to call more than once.
func RegisterBindingRules() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}
