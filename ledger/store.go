package ledger

// Store holds every account, looked up by derived username. The slice keeps
// seed order, which is the order statements and listings present accounts in.
// Username uniqueness is a precondition on the seed data (config validation
// enforces it); the store itself does not re-check on Append.
type Store struct {
	accounts []*Account
}

func NewStore(accounts ...*Account) *Store {
	s := &Store{}
	for _, a := range accounts {
		s.Append(a)
	}
	return s
}

// FindByUsername returns the live account and whether it exists. Not-found is
// a normal outcome, not an error.
func (s *Store) FindByUsername(username string) (*Account, bool) {
	for _, a := range s.accounts {
		if a.Username == username {
			return a, true
		}
	}
	return nil, false
}

// RemoveByUsername deletes the matching account and reports whether one
// existed. The removed account's history goes with it.
func (s *Store) RemoveByUsername(username string) bool {
	for i, a := range s.accounts {
		if a.Username == username {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return true
		}
	}
	return false
}

// Append adds an account. The caller has already derived Username and
// guaranteed it does not collide.
func (s *Store) Append(a *Account) {
	s.accounts = append(s.accounts, a)
}

func (s *Store) Len() int { return len(s.accounts) }

// Usernames returns the keys in seed order.
func (s *Store) Usernames() []string {
	out := make([]string, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.Username)
	}
	return out
}
