package stockroom

import (
	"context"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/stockroomhq/stockroom/store/sqlite"
)

// sentinelCollection is the collection the document probe reads from. Its
// contents do not matter; only whether the bounded read succeeds.
const sentinelCollection = "api_check"

// apiDisabledSubstrings mark the "service exists but its API is not
// enabled" failure, which is logged differently from other failures.
var apiDisabledSubstrings = []string{
	"API has not been used",
	"it is disabled",
}

// Probe detects which backends are usable in the current environment.
// Implementations must never fail: every outcome is a boolean.
type Probe interface {
	// DocumentAvailable reports whether the document backend answers a
	// bounded read.
	DocumentAvailable(ctx context.Context) bool

	// RelationalAvailable reports whether the embedded relational engine
	// can be opened.
	RelationalAvailable(ctx context.Context) bool
}

// defaultProbe probes the real backends named in the configuration.
type defaultProbe struct {
	cfg    Config
	logger *slog.Logger
}

var _ Probe = (*defaultProbe)(nil)

// DocumentAvailable issues one limit-1 read against the sentinel
// collection. Any failure, connect included, resolves to false.
func (p *defaultProbe) DocumentAvailable(ctx context.Context) bool {
	client, err := mongod.Connect(options.Client().ApplyURI(p.cfg.MongoURI))
	if err != nil {
		p.logger.Debug("document probe: connect failed", "error", err)
		return false
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	cur, err := client.Database(p.cfg.MongoDatabase).
		Collection(sentinelCollection).
		Find(ctx, bson.D{}, options.Find().SetLimit(1))
	if err != nil {
		if isAPIDisabled(err) {
			p.logger.Warn("document probe: API not enabled", "error", err)
		} else {
			p.logger.Debug("document probe: read failed", "error", err)
		}
		return false
	}
	_ = cur.Close(ctx)
	return true
}

// RelationalAvailable opens and pings the embedded database.
func (p *defaultProbe) RelationalAvailable(ctx context.Context) bool {
	st, err := sqlite.Open(p.cfg.SQLitePath)
	if err != nil {
		p.logger.Debug("relational probe: open failed", "error", err)
		return false
	}
	defer func() { _ = st.Close() }()

	if err := st.Ping(ctx); err != nil {
		p.logger.Debug("relational probe: ping failed", "error", err)
		return false
	}
	return true
}

func isAPIDisabled(err error) bool {
	msg := err.Error()
	for _, sub := range apiDisabledSubstrings {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}
