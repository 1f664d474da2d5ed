// Package export renders the collection for the backup and report
// collaborators. The snapshot shape is the external contract; a backup
// written here and read back reproduces the collection exactly.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"stockledger/internal/ledger"
	"stockledger/pkg/models"
)

// WriteBackup serializes the snapshot as the JSON backup document.
func WriteBackup(w io.Writer, snapshot models.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// ReadBackup parses a JSON backup document back into a snapshot.
func ReadBackup(r io.Reader) (models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("read backup: %w", err)
	}
	return snapshot, nil
}

var reportHeader = []string{
	"code", "name", "type", "stock", "movement", "quantity", "date", "serial_number", "customer", "remarks",
}

// WriteCSVReport renders one row per transaction, grouped under its item with
// the derived stock, transactions most recent first.
func WriteCSVReport(w io.Writer, items []models.Item) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(reportHeader); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for _, item := range items {
		stock := strconv.Itoa(ledger.DeriveStock(item))

		if len(item.Transactions) == 0 {
			record := []string{item.Code, item.Name, item.Type.String(), stock, "", "", "", "", "", item.Remarks}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write report row: %w", err)
			}
			continue
		}

		transactions := make([]models.Transaction, len(item.Transactions))
		copy(transactions, item.Transactions)
		sort.SliceStable(transactions, func(i, j int) bool {
			return transactions[i].Date.After(transactions[j].Date)
		})

		for _, tx := range transactions {
			record := []string{
				item.Code,
				item.Name,
				item.Type.String(),
				stock,
				tx.Type.String(),
				strconv.Itoa(tx.Quantity),
				tx.Date.Format("2006-01-02 15:04:05"),
				tx.SerialNumber,
				tx.CustomerName,
				tx.Remarks,
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write report row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
