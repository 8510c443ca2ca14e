package workbook

import (
	"encoding/csv"
	"fmt"
	"os"

	"ppm-service/internal/model"
	"ppm-service/internal/store"
)

var usersHeader = []string{"phone", "name", "role"}

// FindUser looks up a phone number (exact string match) in the users CSV. A
// missing registry file is treated as an empty registry, matching the
// original's behavior of creating it on first registration.
func (w *Workbook) FindUser(phone string) (*model.User, error) {
	users, err := w.readUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Phone == phone {
			return &users[i], nil
		}
	}
	return nil, store.ErrUserNotFound
}

// CreateUser appends one registry entry and rewrites the CSV immediately.
func (w *Workbook) CreateUser(user model.User) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	users, err := w.readUsers()
	if err != nil {
		return err
	}
	users = append(users, user)
	if err := w.writeUsers(users); err != nil {
		return fmt.Errorf("%w: %v", store.ErrPersist, err)
	}
	return nil
}

func (w *Workbook) readUsers() ([]model.User, error) {
	f, err := os.Open(w.usersPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open users registry: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read users registry: %w", err)
	}

	var users []model.User
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == usersHeader[0] {
			continue
		}
		if len(rec) < 3 || rec[0] == "" {
			continue
		}
		users = append(users, model.User{Phone: rec[0], Name: rec[1], Role: rec[2]})
	}
	return users, nil
}

func (w *Workbook) writeUsers(users []model.User) error {
	f, err := os.Create(w.usersPath)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(usersHeader); err != nil {
		return err
	}
	for _, u := range users {
		if err := cw.Write([]string{u.Phone, u.Name, u.Role}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
