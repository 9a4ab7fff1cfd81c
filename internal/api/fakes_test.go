package api

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"itemvault/internal/model"
)

// duplicateKeyErr mimics the text of a unique index violation so the
// classifier sees the same shape the real store produces.
func duplicateKeyErr(index string) error {
	return errors.New("E11000 duplicate key error collection: itemvault.user index: " + index + "_1 dup key")
}

// fakeItems is an in-memory ItemStore. Calls counts every store method
// invocation so tests can assert that rejected requests never reach it.
type fakeItems struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]model.Item
	order []primitive.ObjectID
	calls int
}

func newFakeItems() *fakeItems {
	return &fakeItems{docs: make(map[primitive.ObjectID]model.Item)}
}

func (f *fakeItems) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeItems) List(ctx context.Context, skip, limit int64) ([]model.Item, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	total := int64(len(f.order))
	var out []model.Item
	// Newest first, like the real store's descending _id sort.
	for i := len(f.order) - 1 - int(skip); i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, f.docs[f.order[i]])
	}
	return out, total, nil
}

func (f *fakeItems) Create(ctx context.Context, item model.Item) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	item.ID = primitive.NewObjectID()
	f.docs[item.ID] = item
	f.order = append(f.order, item.ID)
	return item.ID, nil
}

func (f *fakeItems) Get(ctx context.Context, id primitive.ObjectID) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	item, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (f *fakeItems) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	item, ok := f.docs[id]
	if !ok {
		return false, nil
	}
	for key, value := range fields {
		s, _ := value.(string)
		switch key {
		case "itemName":
			item.ItemName = s
		case "itemCategory":
			item.ItemCategory = s
		case "itemPrice":
			item.ItemPrice = s
		case "status":
			item.Status = s
		}
	}
	f.docs[id] = item
	return true, nil
}

func (f *fakeItems) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if _, ok := f.docs[id]; !ok {
		return false, nil
	}
	delete(f.docs, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// fakeUsers is an in-memory UserStore that enforces the same email and
// username uniqueness the real store gets from its indexes.
type fakeUsers struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]model.User
	order []primitive.ObjectID
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{docs: make(map[primitive.ObjectID]model.User)}
}

// scrubbed returns a copy without the password hash, matching the real
// store's read projection.
func scrubbed(u model.User) model.User {
	u.Password = ""
	return u
}

func (f *fakeUsers) conflict(user model.User, exclude primitive.ObjectID) error {
	for id, existing := range f.docs {
		if id == exclude {
			continue
		}
		if existing.Username == user.Username {
			return duplicateKeyErr("username")
		}
		if existing.Email == user.Email {
			return duplicateKeyErr("email")
		}
	}
	return nil
}

func (f *fakeUsers) List(ctx context.Context, skip, limit int64) ([]model.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := int64(len(f.order))
	var out []model.User
	for i := len(f.order) - 1 - int(skip); i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, scrubbed(f.docs[f.order[i]]))
	}
	return out, total, nil
}

func (f *fakeUsers) Create(ctx context.Context, user model.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.conflict(user, primitive.NilObjectID); err != nil {
		return primitive.NilObjectID, err
	}
	user.ID = primitive.NewObjectID()
	f.docs[user.ID] = user
	f.order = append(f.order, user.ID)
	return user.ID, nil
}

func (f *fakeUsers) Get(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	user = scrubbed(user)
	return &user, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.byEmail(email)
	if !ok {
		return nil, nil
	}
	user = scrubbed(user)
	return &user, nil
}

func (f *fakeUsers) GetByEmailWithPassword(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.byEmail(email)
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeUsers) byEmail(email string) (model.User, bool) {
	for _, id := range f.order {
		if user, ok := f.docs[id]; ok && user.Email == email {
			return user, true
		}
	}
	return model.User{}, false
}

func (f *fakeUsers) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.docs[id]
	if !ok {
		return false, nil
	}
	updated := applyUserFields(user, fields)
	if err := f.conflict(updated, id); err != nil {
		return false, err
	}
	f.docs[id] = updated
	return true, nil
}

func (f *fakeUsers) UpdateByEmail(ctx context.Context, email string, fields bson.M) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.byEmail(email)
	if !ok {
		return false, nil
	}
	updated := applyUserFields(user, fields)
	if err := f.conflict(updated, user.ID); err != nil {
		return false, err
	}
	f.docs[user.ID] = updated
	return true, nil
}

func (f *fakeUsers) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.docs[id]; !ok {
		return false, nil
	}
	delete(f.docs, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func applyUserFields(user model.User, fields bson.M) model.User {
	for key, value := range fields {
		switch key {
		case "username":
			user.Username, _ = value.(string)
		case "email":
			user.Email, _ = value.(string)
		case "password":
			user.Password, _ = value.(string)
		case "status":
			user.Status, _ = value.(string)
		case "firstname":
			user.Firstname = toStringPtr(value)
		case "lastname":
			user.Lastname = toStringPtr(value)
		case "profileImage":
			user.ProfileImage = toStringPtr(value)
		}
	}
	return user
}

func toStringPtr(value any) *string {
	switch v := value.(type) {
	case string:
		return &v
	case *string:
		return v
	default:
		return nil
	}
}
