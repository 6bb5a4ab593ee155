// Package memory keeps users and thoughts in process memory with the same
// contract as the MongoDB repositories. It backs STORE_DRIVER=memory and the tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dias221467/Social_Network_API/internal/models"
	"github.com/Dias221467/Social_Network_API/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// collection is an insertion-ordered map guarded by a lock.
type collection[T any] struct {
	mu    sync.RWMutex
	docs  map[primitive.ObjectID]*T
	order []primitive.ObjectID
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{docs: make(map[primitive.ObjectID]*T)}
}

func (c *collection[T]) insert(id primitive.ObjectID, doc *T) {
	c.docs[id] = doc
	c.order = append(c.order, id)
}

func (c *collection[T]) remove(id primitive.ObjectID) {
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func notFound(kind string, id primitive.ObjectID) error {
	return fmt.Errorf("%s %s: %w", kind, id.Hex(), repository.ErrNotFound)
}

func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)
	return out
}

func pullID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// UserRepository is the in-memory users collection.
type UserRepository struct {
	c *collection[models.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{c: newCollection[models.User]()}
}

func cloneUser(u *models.User) *models.User {
	out := *u
	out.Thoughts = cloneIDs(u.Thoughts)
	out.Friends = cloneIDs(u.Friends)
	return &out
}

func (r *UserRepository) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if err := r.checkUnique(primitive.NilObjectID, &user.Username, &user.Email); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	user.Normalize()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	r.c.insert(user.ID, cloneUser(user))
	return cloneUser(user), nil
}

func (r *UserRepository) GetAllUsers(_ context.Context) ([]models.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	users := make([]models.User, 0, len(r.c.order))
	for _, id := range r.c.order {
		users = append(users, *cloneUser(r.c.docs[id]))
	}
	return users, nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	u, ok := r.c.docs[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	users := []models.User{}
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if u, ok := r.c.docs[id]; ok && !seen[id] {
			seen[id] = true
			users = append(users, *cloneUser(u))
		}
	}
	return users, nil
}

// checkUnique reports a clash of username or email with any user other than self.
// Callers hold the write lock.
func (r *UserRepository) checkUnique(self primitive.ObjectID, username, email *string) error {
	for id, existing := range r.c.docs {
		if id == self {
			continue
		}
		if username != nil && existing.Username == *username {
			return fmt.Errorf("duplicate username %q", *username)
		}
		if email != nil && existing.Email == *email {
			return fmt.Errorf("duplicate email %q", *email)
		}
	}
	return nil
}

func (r *UserRepository) UpdateUser(_ context.Context, id primitive.ObjectID, upd models.UserUpdate) (*models.User, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	u, ok := r.c.docs[id]
	if !ok {
		return nil, notFound("user", id)
	}
	if err := r.checkUnique(id, upd.Username, upd.Email); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Thoughts != nil {
		u.Thoughts = cloneIDs(models.IDs(upd.Thoughts))
	}
	if upd.Friends != nil {
		u.Friends = cloneIDs(models.IDs(upd.Friends))
	}
	u.UpdatedAt = time.Now()
	return cloneUser(u), nil
}

func (r *UserRepository) DeleteUser(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	u, ok := r.c.docs[id]
	if !ok {
		return nil, notFound("user", id)
	}
	r.c.remove(id)
	return u, nil
}

func (r *UserRepository) PushFriend(_ context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	return r.mutate(userID, func(u *models.User) {
		u.Friends = append(u.Friends, friendID)
	})
}

func (r *UserRepository) PullFriend(_ context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	return r.mutate(userID, func(u *models.User) {
		u.Friends = pullID(u.Friends, friendID)
	})
}

func (r *UserRepository) PushThought(_ context.Context, userID, thoughtID primitive.ObjectID) error {
	_, err := r.mutate(userID, func(u *models.User) {
		u.Thoughts = append(u.Thoughts, thoughtID)
	})
	return err
}

func (r *UserRepository) PullThought(_ context.Context, userID, thoughtID primitive.ObjectID) error {
	_, err := r.mutate(userID, func(u *models.User) {
		u.Thoughts = pullID(u.Thoughts, thoughtID)
	})
	return err
}

func (r *UserRepository) mutate(id primitive.ObjectID, fn func(*models.User)) (*models.User, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	u, ok := r.c.docs[id]
	if !ok {
		return nil, notFound("user", id)
	}
	fn(u)
	u.UpdatedAt = time.Now()
	return cloneUser(u), nil
}

// ThoughtRepository is the in-memory thoughts collection.
type ThoughtRepository struct {
	c *collection[models.Thought]
}

func NewThoughtRepository() *ThoughtRepository {
	return &ThoughtRepository{c: newCollection[models.Thought]()}
}

func cloneThought(t *models.Thought) *models.Thought {
	out := *t
	out.Reactions = make([]models.Reaction, len(t.Reactions))
	copy(out.Reactions, t.Reactions)
	return &out
}

func (r *ThoughtRepository) CreateThought(_ context.Context, thought *models.Thought) (*models.Thought, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	thought.Normalize()
	if thought.ID.IsZero() {
		thought.ID = primitive.NewObjectID()
	}
	thought.CreatedAt = time.Now()
	thought.UpdatedAt = thought.CreatedAt

	r.c.insert(thought.ID, cloneThought(thought))
	return cloneThought(thought), nil
}

func (r *ThoughtRepository) GetAllThoughts(_ context.Context) ([]models.Thought, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	thoughts := make([]models.Thought, 0, len(r.c.order))
	for _, id := range r.c.order {
		thoughts = append(thoughts, *cloneThought(r.c.docs[id]))
	}
	return thoughts, nil
}

func (r *ThoughtRepository) GetThoughtByID(_ context.Context, id primitive.ObjectID) (*models.Thought, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	t, ok := r.c.docs[id]
	if !ok {
		return nil, notFound("thought", id)
	}
	return cloneThought(t), nil
}

func (r *ThoughtRepository) GetThoughtsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Thought, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	thoughts := []models.Thought{}
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if t, ok := r.c.docs[id]; ok && !seen[id] {
			seen[id] = true
			thoughts = append(thoughts, *cloneThought(t))
		}
	}
	return thoughts, nil
}

func (r *ThoughtRepository) UpdateThought(_ context.Context, id primitive.ObjectID, upd models.ThoughtUpdate) (*models.Thought, error) {
	return r.mutate(id, func(t *models.Thought) {
		if upd.ThoughtText != nil {
			t.ThoughtText = *upd.ThoughtText
		}
		if upd.Username != nil {
			t.Username = *upd.Username
		}
		if upd.UserID != nil {
			t.UserID = *upd.UserID
		}
	})
}

func (r *ThoughtRepository) DeleteThought(_ context.Context, id primitive.ObjectID) (*models.Thought, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	t, ok := r.c.docs[id]
	if !ok {
		return nil, notFound("thought", id)
	}
	r.c.remove(id)
	return t, nil
}

func (r *ThoughtRepository) DeleteThoughtsByUsername(_ context.Context, username string) (int64, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	var doomed []primitive.ObjectID
	for _, id := range r.c.order {
		if r.c.docs[id].Username == username {
			doomed = append(doomed, id)
		}
	}
	for _, id := range doomed {
		r.c.remove(id)
	}
	return int64(len(doomed)), nil
}

func (r *ThoughtRepository) PushReaction(_ context.Context, thoughtID primitive.ObjectID, reaction models.Reaction) (*models.Thought, error) {
	return r.mutate(thoughtID, func(t *models.Thought) {
		t.Reactions = append(t.Reactions, reaction)
	})
}

func (r *ThoughtRepository) PullReaction(_ context.Context, thoughtID, reactionID primitive.ObjectID) (*models.Thought, error) {
	return r.mutate(thoughtID, func(t *models.Thought) {
		kept := t.Reactions[:0]
		for _, rc := range t.Reactions {
			if rc.ReactionID != reactionID {
				kept = append(kept, rc)
			}
		}
		t.Reactions = kept
	})
}

func (r *ThoughtRepository) mutate(id primitive.ObjectID, fn func(*models.Thought)) (*models.Thought, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	t, ok := r.c.docs[id]
	if !ok {
		return nil, notFound("thought", id)
	}
	fn(t)
	t.UpdatedAt = time.Now()
	return cloneThought(t), nil
}
