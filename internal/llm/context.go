package llm

import "context"

// Labels tag a request in the event log so that generation traffic can be
// traced back to the skill and practice session that caused it.
type Labels struct {
	Purpose string
	Skill   string
	Session string
}

type labelsKey struct{}

// LabelsFrom returns the labels attached to ctx. Purpose defaults to
// "unknown" so that untagged calls remain visible in usage reports.
func LabelsFrom(ctx context.Context) Labels {
	l, _ := ctx.Value(labelsKey{}).(Labels)
	if l.Purpose == "" {
		l.Purpose = "unknown"
	}
	return l
}

func withLabels(ctx context.Context, update func(*Labels)) context.Context {
	l, _ := ctx.Value(labelsKey{}).(Labels)
	update(&l)
	return context.WithValue(ctx, labelsKey{}, l)
}

// WithPurpose sets the purpose label, keeping any other labels.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return withLabels(ctx, func(l *Labels) { l.Purpose = purpose })
}

// WithSkill sets the skill label.
func WithSkill(ctx context.Context, skill string) context.Context {
	return withLabels(ctx, func(l *Labels) { l.Skill = skill })
}

// WithSession sets the session label.
func WithSession(ctx context.Context, session string) context.Context {
	return withLabels(ctx, func(l *Labels) { l.Session = session })
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	return LabelsFrom(ctx).Purpose
}
