package rolecall

import (
	"context"
	"time"
)

// Role is a guild role as seen through the platform API. Roles are weak
// references: another client may create or delete them between two calls,
// so they are always re-resolved before a mutation.
type Role struct {
	ID   string
	Name string
}

// BoardEntry is one row of the role leaderboard.
type BoardEntry struct {
	Role  string
	Count int
}

// Guild is the remote guild state the bot reads and mutates. Implementations
// wrap the platform client; every call hits the remote API, nothing is cached.
type Guild interface {
	Roles(ctx context.Context, guildID string) ([]Role, error)
	MemberRoles(ctx context.Context, guildID, userID string) ([]Role, error)
	CreateRole(ctx context.Context, guildID, name string, color int) (Role, error)
	DeleteRole(ctx context.Context, guildID, roleID string) error
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
	RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error
	RoleMemberCount(ctx context.Context, guildID, roleID string) (int, error)
}

const (
	HistoryGrant  = "grant"
	HistoryRevoke = "revoke"
)

// HistoryEntry records one successful role grant or revoke.
type HistoryEntry struct {
	GuildID string
	UserID  string
	Role    string
	Action  string
	At      time.Time
}

// History is an append-only record of role grants and revokes.
type History interface {
	Record(ctx context.Context, entry HistoryEntry) error
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
