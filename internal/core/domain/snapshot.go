package domain

// Snapshot is the whole persisted state: one document with two collections.
type Snapshot struct {
	Users  []User  `json:"users"`
	Fiches []Fiche `json:"fiches"`
}

// Clone returns a deep copy so callers never share slices with a store cache.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return &Snapshot{Users: []User{}, Fiches: []Fiche{}}
	}
	out := &Snapshot{
		Users:  make([]User, len(s.Users)),
		Fiches: make([]Fiche, len(s.Fiches)),
	}
	copy(out.Users, s.Users)
	for i, f := range s.Fiches {
		out.Fiches[i] = f.Clone()
	}
	return out
}

// FindUserByEmail does an exact, case-sensitive match.
func (s *Snapshot) FindUserByEmail(email string) (User, bool) {
	for _, u := range s.Users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

func (s *Snapshot) FindUser(id string) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FicheIndex returns the position of the fiche with id, or -1.
func (s *Snapshot) FicheIndex(id string) int {
	for i, f := range s.Fiches {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// UserNames maps user ids to display names.
func (s *Snapshot) UserNames() map[string]string {
	names := make(map[string]string, len(s.Users))
	for _, u := range s.Users {
		names[u.ID] = u.Name
	}
	return names
}
