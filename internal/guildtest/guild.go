// Package guildtest provides an in-memory rolecall.Guild for tests.
package guildtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/mktierney/rolecall"
	rcerrors "github.com/mktierney/rolecall/errors"
)

// GuildRole is one fake guild role and the set of members holding it.
type GuildRole struct {
	ID      string
	Name    string
	Color   int
	members map[string]struct{}
}

// Guild records every mutation so tests can assert on side effects. When Err
// is set, every call fails with it.
type Guild struct {
	mu     sync.Mutex
	nextID int
	roles  []*GuildRole

	Err     error
	Created []string
	Deleted []string
}

func New() *Guild {
	return &Guild{nextID: 1}
}

// Seed adds a role directly to the fake guild state, bypassing the Guild
// interface, optionally with members already holding it.
func (g *Guild) Seed(name string, color int, members ...string) *GuildRole {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seed(name, color, members...)
}

func (g *Guild) seed(name string, color int, members ...string) *GuildRole {
	role := &GuildRole{
		ID:      fmt.Sprintf("role-%d", g.nextID),
		Name:    name,
		Color:   color,
		members: make(map[string]struct{}),
	}
	g.nextID++
	for _, m := range members {
		role.members[m] = struct{}{}
	}
	g.roles = append(g.roles, role)
	return role
}

// Role looks up a seeded or created role by name.
func (g *Guild) Role(name string) (*GuildRole, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, role := range g.roles {
		if role.Name == name {
			return role, true
		}
	}
	return nil, false
}

// MemberHas reports whether userID currently holds the named role.
func (g *Guild) MemberHas(userID, name string) bool {
	role, ok := g.Role(name)
	if !ok {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok = role.members[userID]
	return ok
}

func (g *Guild) Roles(_ context.Context, _ string) ([]rolecall.Role, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}

	roles := make([]rolecall.Role, 0, len(g.roles))
	for _, role := range g.roles {
		roles = append(roles, rolecall.Role{ID: role.ID, Name: role.Name})
	}
	return roles, nil
}

func (g *Guild) MemberRoles(_ context.Context, _, userID string) ([]rolecall.Role, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}

	var roles []rolecall.Role
	for _, role := range g.roles {
		if _, ok := role.members[userID]; ok {
			roles = append(roles, rolecall.Role{ID: role.ID, Name: role.Name})
		}
	}
	return roles, nil
}

func (g *Guild) CreateRole(_ context.Context, _ string, name string, color int) (rolecall.Role, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return rolecall.Role{}, g.Err
	}

	role := g.seed(name, color)
	g.Created = append(g.Created, name)
	return rolecall.Role{ID: role.ID, Name: role.Name}, nil
}

func (g *Guild) DeleteRole(_ context.Context, _, roleID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return g.Err
	}

	for i, role := range g.roles {
		if role.ID == roleID {
			g.roles = append(g.roles[:i], g.roles[i+1:]...)
			g.Deleted = append(g.Deleted, role.Name)
			return nil
		}
	}
	return rcerrors.ErrNotFound
}

func (g *Guild) AddMemberRole(_ context.Context, _, userID, roleID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return g.Err
	}

	role, err := g.byID(roleID)
	if err != nil {
		return err
	}
	role.members[userID] = struct{}{}
	return nil
}

func (g *Guild) RemoveMemberRole(_ context.Context, _, userID, roleID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return g.Err
	}

	role, err := g.byID(roleID)
	if err != nil {
		return err
	}
	delete(role.members, userID)
	return nil
}

func (g *Guild) RoleMemberCount(_ context.Context, _, roleID string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return 0, g.Err
	}

	role, err := g.byID(roleID)
	if err != nil {
		return 0, err
	}
	return len(role.members), nil
}

func (g *Guild) byID(roleID string) (*GuildRole, error) {
	for _, role := range g.roles {
		if role.ID == roleID {
			return role, nil
		}
	}
	return nil, rcerrors.ErrNotFound
}
