package attendance

import (
	"context"
	"net/mail"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/user"
)

const (
	warningTemplate = "attendance_warning"
	warningSubject  = "Your attendance needs attention"

	// users checked concurrently
	maxInFlight = 8
)

type (
	courseWarning struct {
		Name        string
		Percent     int
		MinRequired int
	}

	warningData struct {
		Name    string
		Courses []courseWarning
	}
)

// WarningMessages builds one email per active user with at least threshold courses at risk.
// Messages follow the order of users.
func (svc *Service) WarningMessages(ctx context.Context, users []user.User, threshold int) ([]*core.EmailMessage, error) {
	if threshold < 1 {
		threshold = 1
	}

	msgs := make([]*core.EmailMessage, len(users))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)
	for i, usr := range users {
		i, usr := i, usr
		if !usr.IsActive {
			continue
		}
		g.Go(func() error {
			risky, err := svc.AtRisk(ctx, usr.ID)
			if err != nil {
				return errors.Wrapf(err, "checking attendance of %s", usr.ID)
			}
			if len(risky) < threshold {
				return nil
			}
			msgs[i] = newWarningMessage(usr, risky)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*core.EmailMessage
	for _, msg := range msgs {
		if msg != nil {
			out = append(out, msg)
		}
	}
	return out, nil
}

func newWarningMessage(usr user.User, risky []Course) *core.EmailMessage {
	sort.Slice(risky, func(i, j int) bool { return risky[i].Name < risky[j].Name })
	data := warningData{Name: usr.Name, Courses: make([]courseWarning, 0, len(risky))}
	for _, c := range risky {
		st := c.Stats()
		data.Courses = append(data.Courses, courseWarning{Name: c.Name, Percent: st.Percent, MinRequired: st.MinRequired})
	}
	return &core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      warningSubject,
		TemplateName: warningTemplate,
		TemplateData: data,
	}
}
