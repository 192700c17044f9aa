package repository

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// parseNumeric converte uma coluna numérica lida como texto. Valores nulos,
// não numéricos ou negativos viram zero e são marcados como inválidos.
func parseNumeric(raw sql.NullString, table, id, column string) (decimal.Decimal, bool) {
	if !raw.Valid {
		logrus.WithFields(logrus.Fields{
			"table":  table,
			"id":     id,
			"column": column,
		}).Warn("Valor numérico nulo, considerando zero")
		return decimal.Zero, true
	}

	value, err := decimal.NewFromString(raw.String)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"table":  table,
			"id":     id,
			"column": column,
			"value":  raw.String,
		}).Warn("Valor numérico inválido, considerando zero")
		return decimal.Zero, true
	}

	if value.IsNegative() {
		logrus.WithFields(logrus.Fields{
			"table":  table,
			"id":     id,
			"column": column,
			"value":  raw.String,
		}).Warn("Valor numérico negativo, considerando zero")
		return decimal.Zero, true
	}

	return value, false
}
