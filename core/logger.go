package core

// Logger is the logging contract shared by the apps and services.
// args may carry an error, extra fields as map[string]interface{} and the request's user.User.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
