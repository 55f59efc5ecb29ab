package rolecall

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	rcerrors "github.com/mktierney/rolecall/errors"
)

var log = logrus.StandardLogger().WithFields(logrus.Fields{
	"component": "roles",
})

// Service implements role self-assignment over live guild state. Reads are
// never cached; the guild is the source of truth and every query re-resolves
// it. Mutations for one user are serialized with a per-user lock so that the
// limit check and the grant cannot interleave for that user; unrelated users
// proceed concurrently.
type Service struct {
	registry Registry
	guild    Guild
	history  History

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService builds a Service. history may be nil, in which case grants and
// revokes are not recorded.
func NewService(registry Registry, guild Guild, history History) *Service {
	return &Service{
		registry: registry,
		guild:    guild,
		history:  history,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Registry returns the whitelist configuration the service was built with.
func (s *Service) Registry() Registry {
	return s.registry
}

// IsWhitelisted reports whether name is in the whitelist, ignoring case.
func (s *Service) IsWhitelisted(name string) bool {
	return s.registry.Contains(name)
}

// GuildHasRole reports whether the guild currently has a role called name.
func (s *Service) GuildHasRole(ctx context.Context, guildID, name string) (bool, error) {
	_, err := s.findRole(ctx, guildID, name)
	if errors.Is(err, rcerrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AuthorHasRole reports whether the member currently holds a role called
// name, ignoring case.
func (s *Service) AuthorHasRole(ctx context.Context, guildID, userID, name string) (bool, error) {
	roles, err := s.guild.MemberRoles(ctx, guildID, userID)
	if err != nil {
		return false, fmt.Errorf("reading member roles: %w", err)
	}
	for _, role := range roles {
		if strings.EqualFold(role.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// HeldRoles returns the whitelisted roles the member currently holds, in
// canonical casing, sorted.
func (s *Service) HeldRoles(ctx context.Context, guildID, userID string) ([]string, error) {
	roles, err := s.guild.MemberRoles(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("reading member roles: %w", err)
	}

	var held []string
	for _, role := range roles {
		if canonical, ok := s.registry.Canonical(role.Name); ok {
			held = append(held, canonical)
		}
	}
	sort.Strings(held)
	return held, nil
}

// HasMaxRoles reports whether the member already holds the maximum number of
// whitelisted roles.
func (s *Service) HasMaxRoles(ctx context.Context, guildID, userID string) (bool, error) {
	held, err := s.HeldRoles(ctx, guildID, userID)
	if err != nil {
		return false, err
	}
	return len(held) >= s.registry.MaxRoles(), nil
}

// GuildRoles returns the guild's roles in guild order.
func (s *Service) GuildRoles(ctx context.Context, guildID string) ([]Role, error) {
	return s.guild.Roles(ctx, guildID)
}

// AddRole grants the member a whitelisted role, creating the guild role with
// the registry color if it does not exist yet. The returned name is the
// whitelist's canonical casing. Business failures are ErrNotWhitelisted,
// ErrMaxRoles and ErrAlreadyHasRole; anything else is a remote failure.
func (s *Service) AddRole(ctx context.Context, guildID, userID, name string) (string, error) {
	canonical, ok := s.registry.Canonical(name)
	if !ok {
		return "", rcerrors.ErrNotWhitelisted
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	held, err := s.HeldRoles(ctx, guildID, userID)
	if err != nil {
		return "", err
	}
	if len(held) >= s.registry.MaxRoles() {
		return "", rcerrors.ErrMaxRoles
	}
	for _, h := range held {
		if strings.EqualFold(h, canonical) {
			return "", rcerrors.ErrAlreadyHasRole
		}
	}

	role, err := s.findRole(ctx, guildID, canonical)
	if errors.Is(err, rcerrors.ErrNotFound) {
		role, err = s.guild.CreateRole(ctx, guildID, canonical, s.registry.Color())
		if err != nil {
			return "", fmt.Errorf("creating role %q: %w", canonical, err)
		}
	} else if err != nil {
		return "", err
	}

	if err := s.guild.AddMemberRole(ctx, guildID, userID, role.ID); err != nil {
		return "", fmt.Errorf("assigning role %q: %w", canonical, err)
	}

	s.record(ctx, HistoryEntry{GuildID: guildID, UserID: userID, Role: canonical, Action: HistoryGrant})
	return canonical, nil
}

// RemoveRole takes a whitelisted role away from the member. If nobody holds
// the role afterwards the guild role is deleted; whitelist roles only exist
// while somebody wears them. Business failures are ErrNotWhitelisted and
// ErrDoesNotHaveRole.
func (s *Service) RemoveRole(ctx context.Context, guildID, userID, name string) (string, error) {
	canonical, ok := s.registry.Canonical(name)
	if !ok {
		return "", rcerrors.ErrNotWhitelisted
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	has, err := s.AuthorHasRole(ctx, guildID, userID, canonical)
	if err != nil {
		return "", err
	}
	if !has {
		return "", rcerrors.ErrDoesNotHaveRole
	}

	role, err := s.findRole(ctx, guildID, canonical)
	if errors.Is(err, rcerrors.ErrNotFound) {
		// The member list says they hold it but the role is gone; the
		// remote state already matches the goal.
		return "", rcerrors.ErrDoesNotHaveRole
	}
	if err != nil {
		return "", err
	}

	if err := s.guild.RemoveMemberRole(ctx, guildID, userID, role.ID); err != nil {
		return "", fmt.Errorf("removing role %q: %w", canonical, err)
	}

	count, err := s.guild.RoleMemberCount(ctx, guildID, role.ID)
	if err != nil {
		return "", fmt.Errorf("counting members of role %q: %w", canonical, err)
	}
	if count == 0 {
		if err := s.guild.DeleteRole(ctx, guildID, role.ID); err != nil {
			return "", fmt.Errorf("deleting empty role %q: %w", canonical, err)
		}
	}

	s.record(ctx, HistoryEntry{GuildID: guildID, UserID: userID, Role: canonical, Action: HistoryRevoke})
	return canonical, nil
}

// Leaderboard counts the members of every whitelisted guild role. Roles with
// no members are omitted. The result is sorted by count descending; ties keep
// guild role order.
func (s *Service) Leaderboard(ctx context.Context, guildID string) ([]BoardEntry, error) {
	roles, err := s.guild.Roles(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("reading guild roles: %w", err)
	}

	var board []BoardEntry
	for _, role := range roles {
		canonical, ok := s.registry.Canonical(role.Name)
		if !ok {
			continue
		}
		count, err := s.guild.RoleMemberCount(ctx, guildID, role.ID)
		if err != nil {
			return nil, fmt.Errorf("counting members of role %q: %w", role.Name, err)
		}
		if count > 0 {
			board = append(board, BoardEntry{Role: canonical, Count: count})
		}
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Count > board[j].Count
	})
	return board, nil
}

// SweepEmptyRoles deletes whitelisted guild roles that no member holds and
// returns their names. It backstops the delete-when-empty behavior of
// RemoveRole when a removal failed partway through.
func (s *Service) SweepEmptyRoles(ctx context.Context, guildID string) ([]string, error) {
	roles, err := s.guild.Roles(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("reading guild roles: %w", err)
	}

	var deleted []string
	for _, role := range roles {
		if !s.registry.Contains(role.Name) {
			continue
		}
		count, err := s.guild.RoleMemberCount(ctx, guildID, role.ID)
		if err != nil {
			return deleted, fmt.Errorf("counting members of role %q: %w", role.Name, err)
		}
		if count > 0 {
			continue
		}
		if err := s.guild.DeleteRole(ctx, guildID, role.ID); err != nil {
			return deleted, fmt.Errorf("deleting empty role %q: %w", role.Name, err)
		}
		deleted = append(deleted, role.Name)
	}
	return deleted, nil
}

func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

func (s *Service) findRole(ctx context.Context, guildID, name string) (Role, error) {
	roles, err := s.guild.Roles(ctx, guildID)
	if err != nil {
		return Role{}, fmt.Errorf("reading guild roles: %w", err)
	}
	for _, role := range roles {
		if strings.EqualFold(role.Name, name) {
			return role, nil
		}
	}
	return Role{}, rcerrors.ErrNotFound
}

func (s *Service) record(ctx context.Context, entry HistoryEntry) {
	if s.history == nil {
		return
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}
	if err := s.history.Record(ctx, entry); err != nil {
		log.WithError(err).Warn("failed to record role event")
	}
}
