package core

import (
	"log"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stdLogger struct{}

func (stdLogger) Debug(msg string, args ...interface{}) { log.Println(append([]interface{}{msg}, args...)...) }
func (stdLogger) Info(msg string, args ...interface{})  { log.Println(append([]interface{}{msg}, args...)...) }
func (stdLogger) Warn(msg string, args ...interface{})  { log.Println(append([]interface{}{msg}, args...)...) }
func (stdLogger) Error(msg string, args ...interface{}) { log.Println(append([]interface{}{msg}, args...)...) }
func (stdLogger) Fatal(msg string, args ...interface{}) { log.Fatal(append([]interface{}{msg}, args...)...) }

func TestEmailMessage_Render(t *testing.T) {
	ParseEmailTemplates(&Config{TestMode: true, FrontendBaseURL: "http://campus.test"}, stdLogger{})

	type course struct {
		Name        string
		Percent     int
		MinRequired int
	}
	msg := &EmailMessage{
		To:           []mail.Address{{Address: "hero@test.cd"}},
		TemplateName: "attendance_warning",
		TemplateData: struct {
			Name    string
			Courses []course
		}{Name: "Hero", Courses: []course{{Name: "Physics", Percent: 25, MinRequired: 75}}},
	}
	require.NoError(t, msg.Render())
	assert.True(t, msg.HasContent())
	assert.Contains(t, msg.TextContent, "Hi Hero,")
	assert.Contains(t, msg.TextContent, "- Physics: 25% (minimum 75%)")
	assert.Contains(t, msg.TextContent, "http://campus.test/attendance")
	assert.Contains(t, msg.HTMLContent, "<strong>Physics</strong>")

	// missing keys fail loudly in TEST mode
	msg = &EmailMessage{TemplateName: "attendance_warning", TemplateData: map[string]interface{}{}}
	assert.Error(t, msg.Render())

	// plain bodies skip the templates
	msg = &EmailMessage{BodyStr: "hello"}
	require.NoError(t, msg.Render())
	assert.Equal(t, "hello", msg.TextContent)
	assert.Empty(t, msg.HTMLContent)
}
