package querylog

import "github.com/thenaterhood/dnschat/models"

type DummyQueryLog struct{}

func (l *DummyQueryLog) StartQuery(string) string                                       { return "" }
func (l *DummyQueryLog) LogAttempt(string, models.AttemptOutcome)                       {}
func (l *DummyQueryLog) LogFallback(string, models.TransportKind, models.TransportKind) {}
func (l *DummyQueryLog) EndQuery(string, bool, string, models.TransportKind)            {}
func (l *DummyQueryLog) Recent(string) (*QueryRecord, error)                            { return nil, ErrNotFound }
