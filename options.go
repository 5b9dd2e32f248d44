package stockroom

import (
	"log/slog"
)

// Option is a functional option for the Manager.
type Option func(*Manager)

// WithConfig sets the manager configuration.
func WithConfig(c Config) Option { return func(m *Manager) { m.cfg = c } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(m *Manager) { m.logger = l } }

// WithProbe sets the backend capability probe.
func WithProbe(p Probe) Option { return func(m *Manager) { m.probe = p } }

// WithRelationalOpener sets the opener for the relational backend.
func WithRelationalOpener(o Opener) Option { return func(m *Manager) { m.openRelational = o } }

// WithDocumentOpener sets the opener for the document backend.
func WithDocumentOpener(o Opener) Option { return func(m *Manager) { m.openDocument = o } }
