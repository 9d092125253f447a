package testutil

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/attendance"
	"github.com/campusflow/campusflow/core/schedule"
	"github.com/campusflow/campusflow/core/user"
)

// NewConfig returns the TEST config.
func NewConfig() *core.Config {
	_ = os.Setenv("ENV", "TEST")
	return core.NewConfig()
}

// NewValidator returns a validator with every app validation registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)
	return validate, translator
}

func CreateUser(t *testing.T, repo user.Repository, name, email string, isActive bool, createdAt ...time.Time) user.User {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr, err := repo.CreateUser(context.Background(), user.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// ScriptedOracle answers prompts with canned replies, in order.
type ScriptedOracle struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	prompts []string
}

// Script replaces the pending replies and forgets past prompts.
// A non-nil error at index i is returned instead of replies[i].
func (o *ScriptedOracle) Script(replies []string, errs ...error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.replies = replies
	o.errs = errs
	o.prompts = nil
}

func (o *ScriptedOracle) Prompts() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.prompts...)
}

func (o *ScriptedOracle) Generate(_ context.Context, prompt string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	i := len(o.prompts)
	o.prompts = append(o.prompts, prompt)
	if i < len(o.errs) && o.errs[i] != nil {
		return "", o.errs[i]
	}
	if i >= len(o.replies) {
		return "", errors.New("no more scripted replies")
	}
	return o.replies[i], nil
}
