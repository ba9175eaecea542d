package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Souravnandi004/shareXconnect/internal/models"
	"github.com/valkey-io/valkey-go"
)

const summaryTTL = 10 * time.Minute

// UserSummaries caches the actor projection used when building
// notifications, so a burst of likes from one user does not hit the user
// store for the same summary every time. A nil *UserSummaries is a valid
// no-op cache; the caller falls through to the store on every miss.
type UserSummaries struct {
	client valkey.Client
}

func NewUserSummaries(addr string) (*UserSummaries, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}
	return &UserSummaries{client: client}, nil
}

func (c *UserSummaries) Get(ctx context.Context, userID string) (models.UserSummary, bool) {
	if c == nil {
		return models.UserSummary{}, false
	}
	raw, err := c.client.Do(ctx, c.client.B().Get().Key(summaryKey(userID)).Build()).AsBytes()
	if err != nil {
		return models.UserSummary{}, false
	}
	var summary models.UserSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return models.UserSummary{}, false
	}
	return summary, true
}

func (c *UserSummaries) Set(ctx context.Context, summary models.UserSummary) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	cmd := c.client.B().Set().Key(summaryKey(summary.ID.Hex())).Value(string(raw)).Ex(summaryTTL).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		log.Printf("[CACHE] failed to store user summary: %v", err)
	}
}

func (c *UserSummaries) Close() {
	if c != nil {
		c.client.Close()
	}
}

func summaryKey(userID string) string {
	return "user:summary:" + userID
}
