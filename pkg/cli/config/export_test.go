package config

import "time"

func (a *App) SetPath(path string) {
	a.path = path
}

func (l *Logger) Set(level, format, output string) {
	l.level = level
	l.format = format
	l.output = output
}

func (a *Analyzer) Set(command string, timeout time.Duration) {
	a.command = command
	a.timeout = timeout
}

func (r *Repository) SetBackend(backend string) {
	r.backend = backend
}

func (r *Repository) SetSQLitePath(path string) {
	r.sqlitePath = path
}
