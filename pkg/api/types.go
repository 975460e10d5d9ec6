package api

// Organisation is a tenant.
type Organisation struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// UserProfile is the public view of an account.
type UserProfile struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	OrganisationID string `json:"organisation_id"`
	Role           string `json:"role"`
	FirstLogin     bool   `json:"first_login"`
	CreatedAt      int64  `json:"created_at"`
}

// CatalogGroup is an organisation catalog group.
type CatalogGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogItem is either an organisation item or a personal item.
type CatalogItem struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          *string `json:"price,omitempty"`
	OrganisationID string  `json:"organisation_id,omitempty"`
	GroupName      string  `json:"group_name,omitempty"`
	OwnerUserID    string  `json:"owner_user_id,omitempty"`
}

// GroupedItems is one entry of a grouped catalog listing.
type GroupedItems struct {
	Group string        `json:"group"`
	Items []CatalogItem `json:"items"`
}

// ShoppingList is a list with its item names.
type ShoppingList struct {
	ID          string   `json:"id"`
	OwnerUserID string   `json:"owner_user_id"`
	Status      string   `json:"status"`
	Price       *string  `json:"price,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	CreatedAt   int64    `json:"created_at"`
	Items       []string `json:"items,omitempty"`
}

// UserLists is one user's lists, newest first.
type UserLists struct {
	UserID   string         `json:"user_id"`
	Username string         `json:"username"`
	Lists    []ShoppingList `json:"lists"`
}

// LedgerEntry is one transaction. Positive amounts are charges, negative
// amounts are payments.
type LedgerEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Amount    string `json:"amount"`
	Detail    string `json:"detail"`
	CreatedAt int64  `json:"created_at"`
}

// ItemCount is one line of an aggregate shopping run.
type ItemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
