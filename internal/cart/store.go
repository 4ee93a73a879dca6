// Package cart provides the cart line items and their persistent store.
package cart

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNoDesign is returned when an undesigned product is added to the cart.
var ErrNoDesign = errors.New("cart: no design uploaded yet")

// ErrNotFound is returned when a line item id is not in the cart.
var ErrNotFound = errors.New("cart: item not found")

// Customization is the design snapshot attached to a line item. It is copied
// by value when the item is created; later editor changes never reach it.
type Customization struct {
	VariantID     string `json:"variant_id"`
	Color         string `json:"color"`
	DesignDataURL string `json:"design_data_url"`
}

// Item is one cart line item.
type Item struct {
	ID            string        `json:"id"`
	ProductID     string        `json:"product_id"`
	Name          string        `json:"name"`
	PriceCents    int64         `json:"price_cents"`
	Quantity      int           `json:"quantity"`
	ImageDataURL  string        `json:"image_data_url"`
	Customization Customization `json:"customization"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Subtotal returns the item price times quantity.
func (i *Item) Subtotal() int64 {
	return i.PriceCents * int64(i.Quantity)
}

// Store wraps a SQLite database holding the cart so it survives restarts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the cart database at path, ensures the data
// directory exists, and runs schema setup.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS cart_items (
    id TEXT PRIMARY KEY,
    product_id TEXT NOT NULL,
    name TEXT NOT NULL,
    price_cents INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    image_data_url TEXT NOT NULL,
    variant_id TEXT NOT NULL,
    color TEXT NOT NULL,
    design_data_url TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`)
	return err
}

// AddItem validates and stores a new line item, assigning its id. The
// customization must carry a design snapshot.
func (s *Store) AddItem(item Item) (*Item, error) {
	if item.Customization.DesignDataURL == "" {
		return nil, ErrNoDesign
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(`
INSERT INTO cart_items (id, product_id, name, price_cents, quantity, image_data_url, variant_id, color, design_data_url, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.ProductID, item.Name, item.PriceCents, item.Quantity,
		item.ImageDataURL, item.Customization.VariantID, item.Customization.Color,
		item.Customization.DesignDataURL, item.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to insert cart item: %w", err)
	}
	return &item, nil
}

// Items returns all line items, oldest first.
func (s *Store) Items() ([]Item, error) {
	rows, err := s.db.Query(`
SELECT id, product_id, name, price_cents, quantity, image_data_url, variant_id, color, design_data_url, created_at
FROM cart_items ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var created string
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.PriceCents, &it.Quantity,
			&it.ImageDataURL, &it.Customization.VariantID, &it.Customization.Color,
			&it.Customization.DesignDataURL, &created); err != nil {
			return nil, err
		}
		it.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		items = append(items, it)
	}
	return items, rows.Err()
}

// Get returns a single line item by id.
func (s *Store) Get(id string) (*Item, error) {
	row := s.db.QueryRow(`
SELECT id, product_id, name, price_cents, quantity, image_data_url, variant_id, color, design_data_url, created_at
FROM cart_items WHERE id = ?`, id)

	var it Item
	var created string
	err := row.Scan(&it.ID, &it.ProductID, &it.Name, &it.PriceCents, &it.Quantity,
		&it.ImageDataURL, &it.Customization.VariantID, &it.Customization.Color,
		&it.Customization.DesignDataURL, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	it.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return &it, nil
}

// SetQuantity updates a line item's quantity.
func (s *Store) SetQuantity(id string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(id)
	}
	res, err := s.db.Exec(`UPDATE cart_items SET quantity = ? WHERE id = ?`, quantity, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove deletes one line item, destroying its customization snapshot.
func (s *Store) Remove(id string) error {
	res, err := s.db.Exec(`DELETE FROM cart_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM cart_items`)
	return err
}

// SubtotalCents returns the sum of all line subtotals.
func (s *Store) SubtotalCents() (int64, error) {
	row := s.db.QueryRow(`SELECT COALESCE(SUM(price_cents * quantity), 0) FROM cart_items`)
	var total int64
	err := row.Scan(&total)
	return total, err
}
