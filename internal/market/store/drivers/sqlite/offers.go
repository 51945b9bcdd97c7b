package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/internal/market/store"
)

type offersRepo struct {
	db *sql.DB
}

const offerColumns = `o.id, o.product_name, o.product_description, o.product_price,
	o.product_details, o.product_image, o.owner_id, o.created_at, o.updated_at`

const ownerColumns = `u.id, u.email, u.username, u.phone, u.avatar`

func (r *offersRepo) CreateOffer(ctx context.Context, o domain.Offer) error {
	details, err := encodeDetails(o.Details)
	if err != nil {
		return err
	}
	image, err := encodeImage(o.Image)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO offers (
			id, product_name, product_description, product_price,
			product_details, product_image, owner_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Description, o.Price, details, image, o.OwnerID, o.CreatedAt, o.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *offersRepo) GetOffer(ctx context.Context, id string) (domain.Offer, error) {
	if err := checkID(id); err != nil {
		return domain.Offer{}, err
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+offerColumns+` FROM offers o WHERE o.id = ?`, id)
	o, err := scanOffer(row)
	if err != nil {
		return domain.Offer{}, mapNotFound(err)
	}
	return o, nil
}

func (r *offersRepo) GetOfferWithOwner(ctx context.Context, id string) (domain.Offer, error) {
	if err := checkID(id); err != nil {
		return domain.Offer{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+offerColumns+`, `+ownerColumns+`
		FROM offers o
		LEFT JOIN users u ON u.id = o.owner_id
		WHERE o.id = ?`, id)
	o, err := scanOfferWithOwner(row)
	if err != nil {
		return domain.Offer{}, mapNotFound(err)
	}
	return o, nil
}

func (r *offersRepo) ListOffers(ctx context.Context, q store.OfferQuery) (store.OfferPage, error) {
	where, args := offerWhere(q.Filter)

	var page store.OfferPage
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM offers o `+where, args...,
	).Scan(&page.Count); err != nil {
		return store.OfferPage{}, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+offerColumns+`, `+ownerColumns+`
		FROM offers o
		LEFT JOIN users u ON u.id = o.owner_id
		`+where+`
		ORDER BY `+offerOrder(q.Sort)+`
		LIMIT ? OFFSET ?`,
		append(args, limit, q.Skip)...,
	)
	if err != nil {
		return store.OfferPage{}, err
	}
	defer rows.Close()

	page.Offers = make([]domain.Offer, 0, max(q.Limit, 0))
	for rows.Next() {
		o, err := scanOfferWithOwner(rows)
		if err != nil {
			return store.OfferPage{}, err
		}
		page.Offers = append(page.Offers, o)
	}
	return page, rows.Err()
}

func (r *offersRepo) UpdateOfferDetails(ctx context.Context, id string, details []domain.Detail) error {
	if err := checkID(id); err != nil {
		return err
	}
	encoded, err := encodeDetails(details)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE offers SET product_details = ?, updated_at = ? WHERE id = ?`,
		encoded, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *offersRepo) DeleteOffer(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM offers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// offerWhere builds the listing filter. instr on lowered operands gives a
// literal, case-insensitive substring match (ASCII folding only).
func offerWhere(f *store.OfferFilter) (string, []any) {
	if f == nil {
		return "", nil
	}
	return `WHERE instr(lower(o.product_name), lower(?)) > 0
		AND o.product_price >= ? AND o.product_price <= ?`,
		[]any{f.Title, f.PriceMin, f.PriceMax}
}

func offerOrder(dir store.SortDirection) string {
	var b strings.Builder
	switch dir {
	case store.SortAscending:
		b.WriteString("o.product_price ASC, ")
	case store.SortDescending:
		b.WriteString("o.product_price DESC, ")
	}
	b.WriteString("o.id ASC")
	return b.String()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOffer(s scanner) (domain.Offer, error) {
	var (
		o       domain.Offer
		details string
		image   sql.NullString
	)
	if err := s.Scan(
		&o.ID, &o.Name, &o.Description, &o.Price,
		&details, &image, &o.OwnerID, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return domain.Offer{}, err
	}
	return finishOffer(o, details, image)
}

func scanOfferWithOwner(s scanner) (domain.Offer, error) {
	var (
		o               domain.Offer
		details         string
		image           sql.NullString
		ownerID, email  sql.NullString
		username, phone sql.NullString
		avatar          sql.NullString
	)
	if err := s.Scan(
		&o.ID, &o.Name, &o.Description, &o.Price,
		&details, &image, &o.OwnerID, &o.CreatedAt, &o.UpdatedAt,
		&ownerID, &email, &username, &phone, &avatar,
	); err != nil {
		return domain.Offer{}, err
	}

	o, err := finishOffer(o, details, image)
	if err != nil {
		return domain.Offer{}, err
	}

	if ownerID.Valid {
		av, err := decodeImage(avatar)
		if err != nil {
			return domain.Offer{}, err
		}
		o.Owner = &domain.Owner{
			ID:    ownerID.String,
			Email: email.String,
			Account: &domain.Account{
				Username: username.String,
				Phone:    phone.String,
				Avatar:   av,
			},
		}
	}
	return o, nil
}

func finishOffer(o domain.Offer, details string, image sql.NullString) (domain.Offer, error) {
	var err error
	if o.Details, err = decodeDetails(details); err != nil {
		return domain.Offer{}, err
	}
	if o.Image, err = decodeImage(image); err != nil {
		return domain.Offer{}, err
	}
	return o, nil
}
