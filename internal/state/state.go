// Package state owns the record set. Mutations are pure functions from one
// snapshot to the next; the Container binds the current snapshot to the
// store so every applied patch is persisted before it becomes visible.
package state

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// UnknownAccountLabel is rendered for children whose account reference no
// longer resolves (possible only via a manually imported document).
const UnknownAccountLabel = "(unknown account)"

// Clone returns a deep copy of the snapshot. Records are value types, so
// copying the collections is enough.
func Clone(doc model.Document) model.Document {
	out := doc
	out.Accounts = slices.Clone(doc.Accounts)
	out.Transactions = slices.Clone(doc.Transactions)
	out.Positions = slices.Clone(doc.Positions)
	out.Goals = make([]model.Goal, len(doc.Goals))
	for i, g := range doc.Goals {
		g.AccountIDs = slices.Clone(g.AccountIDs)
		out.Goals[i] = g
	}
	out.Targets.Allocation = maps.Clone(doc.Targets.Allocation)
	if out.Targets.Allocation == nil {
		out.Targets.Allocation = map[model.AssetType]model.Percent{}
	}
	return out
}

// AccountByID finds an account in the snapshot.
func AccountByID(doc model.Document, accountID string) (model.Account, bool) {
	for _, a := range doc.Accounts {
		if a.ID == accountID {
			return a, true
		}
	}
	return model.Account{}, false
}

// AccountLabel returns the account's display name, or a fallback label for
// a dangling reference.
func AccountLabel(doc model.Document, accountID string) string {
	if a, ok := AccountByID(doc, accountID); ok {
		return a.Name
	}
	return UnknownAccountLabel
}

// AddAccount appends an account.
func AddAccount(doc model.Document, a model.Account) model.Document {
	next := Clone(doc)
	next.Accounts = append(next.Accounts, a)
	return next
}

// DeleteAccount removes the account and cascades to every transaction and
// position referencing it. Goals keep the dangling link; progress simply
// stops counting it. Missing IDs are a no-op.
func DeleteAccount(doc model.Document, accountID string) model.Document {
	next := Clone(doc)
	next.Accounts = slices.DeleteFunc(next.Accounts, func(a model.Account) bool {
		return a.ID == accountID
	})
	next.Transactions = slices.DeleteFunc(next.Transactions, func(t model.Transaction) bool {
		return t.AccountID == accountID
	})
	next.Positions = slices.DeleteFunc(next.Positions, func(p model.Position) bool {
		return p.AccountID == accountID
	})
	return next
}

// AddTransaction appends a transaction.
func AddTransaction(doc model.Document, t model.Transaction) model.Document {
	next := Clone(doc)
	next.Transactions = append(next.Transactions, t)
	return next
}

// DeleteTransaction removes a transaction by ID.
func DeleteTransaction(doc model.Document, txID string) model.Document {
	next := Clone(doc)
	next.Transactions = slices.DeleteFunc(next.Transactions, func(t model.Transaction) bool {
		return t.ID == txID
	})
	return next
}

// AddPosition appends a position.
func AddPosition(doc model.Document, p model.Position) model.Document {
	next := Clone(doc)
	next.Positions = append(next.Positions, p)
	return next
}

// UpdatePositionPrice replaces a position's last mark-to-market price.
func UpdatePositionPrice(doc model.Document, positionID string, price model.Amount) (model.Document, error) {
	next := Clone(doc)
	for i, p := range next.Positions {
		if p.ID == positionID {
			p.LastPrice = price
			next.Positions[i] = p
			return next, nil
		}
	}
	return doc, fmt.Errorf("position not found: %s", positionID)
}

// DeletePosition removes a position by ID.
func DeletePosition(doc model.Document, positionID string) model.Document {
	next := Clone(doc)
	next.Positions = slices.DeleteFunc(next.Positions, func(p model.Position) bool {
		return p.ID == positionID
	})
	return next
}

// AddGoal appends a goal.
func AddGoal(doc model.Document, g model.Goal) model.Document {
	next := Clone(doc)
	next.Goals = append(next.Goals, g)
	return next
}

// DeleteGoal removes a goal by ID.
func DeleteGoal(doc model.Document, goalID string) model.Document {
	next := Clone(doc)
	next.Goals = slices.DeleteFunc(next.Goals, func(g model.Goal) bool {
		return g.ID == goalID
	})
	return next
}

// UpdateSettings replaces the settings record.
func UpdateSettings(doc model.Document, s model.Settings) model.Document {
	next := Clone(doc)
	next.Settings = s
	return next
}

// UpdateTargets replaces the target allocation and drift threshold.
func UpdateTargets(doc model.Document, t model.Targets) model.Document {
	next := Clone(doc)
	next.Targets = t
	if next.Targets.Allocation == nil {
		next.Targets.Allocation = map[model.AssetType]model.Percent{}
	}
	return next
}

// Replace swaps in a whole imported document verbatim.
func Replace(_ model.Document, imported model.Document) model.Document {
	return Clone(imported)
}

// Persister saves a snapshot. *store.Store satisfies it.
type Persister interface {
	Save(model.Document) error
}

// Container holds the current snapshot and persists every change before
// making it visible. Safe for concurrent readers (the HTTP server).
type Container struct {
	mu        sync.RWMutex
	doc       model.Document
	persister Persister
}

// NewContainer creates a Container seeded with doc.
func NewContainer(doc model.Document, p Persister) *Container {
	return &Container{doc: Clone(doc), persister: p}
}

// Snapshot returns a copy of the current record set.
func (c *Container) Snapshot() model.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Clone(c.doc)
}

// Apply runs patch on the current snapshot, persists the result, and swaps
// it in. If persisting fails the previous snapshot stays current.
func (c *Container) Apply(patch func(model.Document) (model.Document, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := patch(Clone(c.doc))
	if err != nil {
		return err
	}
	if err := c.persister.Save(next); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	c.doc = next
	return nil
}
