package budgetwise

import "strings"

// GetProfile returns the account holder's profile.
func (c *Core) GetProfile() (*Profile, error) {
	var p Profile
	err := c.db.QueryRow(
		"SELECT full_name, email, currency FROM profile WHERE id = 1",
	).Scan(&p.FullName, &p.Email, &p.Currency)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query profile", err)
	}
	return &p, nil
}

// UpdateProfile replaces the profile fields.
func (c *Core) UpdateProfile(p Profile) (*Profile, error) {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if p.Currency == "" {
		p.Currency = "INR"
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return nil, NewError(ErrCodeValidation, "email looks invalid")
	}

	if _, err := c.db.Exec(
		"UPDATE profile SET full_name = ?, email = ?, currency = ? WHERE id = 1",
		p.FullName, p.Email, p.Currency,
	); err != nil {
		return nil, WrapError(ErrCodeDatabase, "update profile", err)
	}
	return &p, nil
}
