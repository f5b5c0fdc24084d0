package i

// Logger is the leveled logger components receive at construction.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
