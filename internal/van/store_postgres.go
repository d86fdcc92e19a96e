// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package van

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vanlife/internal/platform/database/schema"
	"github.com/taibuivan/vanlife/internal/platform/dberr"
)

const resourceName = "Van"

// PostgresRepository implements [Repository] on core.van.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectVans = fmt.Sprintf(`SELECT %s FROM %s`,
	strings.Join(schema.CoreVan.Columns(), ", "),
	schema.CoreVan.Table,
)

func (repository *PostgresRepository) ListVans(context context.Context) ([]*Van, error) {
	query := fmt.Sprintf(`%s ORDER BY %s ASC;`, selectVans, schema.CoreVan.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "list_vans")
	}
	return collectVans(rows)
}

func (repository *PostgresRepository) GetVan(context context.Context, id string) (*Van, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1;`, selectVans, schema.CoreVan.ID)

	v, err := scanVan(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "get_van")
	}
	return v, nil
}

func (repository *PostgresRepository) ListHostVans(context context.Context, hostID string) ([]*Van, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1 ORDER BY %s ASC;`,
		selectVans, schema.CoreVan.HostID, schema.CoreVan.ID)

	rows, err := repository.db.Query(context, query, hostID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "list_host_vans")
	}
	return collectVans(rows)
}

func (repository *PostgresRepository) GetHostVan(context context.Context, hostID, id string) (*Van, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1 AND %s = $2;`,
		selectVans, schema.CoreVan.HostID, schema.CoreVan.ID)

	v, err := scanVan(repository.db.QueryRow(context, query, hostID, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "get_host_van")
	}
	return v, nil
}

// # Scanning

func scanVan(row pgx.Row) (*Van, error) {
	v := &Van{}
	err := row.Scan(&v.ID, &v.Name, &v.Price, &v.Description, &v.ImageURL, &v.Type, &v.HostID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func collectVans(rows pgx.Rows) ([]*Van, error) {
	defer rows.Close()

	vans := make([]*Van, 0)
	for rows.Next() {
		v, err := scanVan(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName, "scan_van")
		}
		vans = append(vans, v)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceName, "iterate_vans")
	}
	return vans, nil
}
