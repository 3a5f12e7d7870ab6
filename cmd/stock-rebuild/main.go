// stock-rebuild recomputes Product.CurrentStock and BatchItem.CurrentQuantity
// from the purchase and sale ledgers. Use it after manual database surgery or
// to verify the counters against the ledger history.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... go run ./cmd/stock-rebuild [--pharmacy-id=<uuid>] [--dry-run]
//
// Without --pharmacy-id every pharmacy is rebuilt.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/medilinkhq/pharmacy_backend/config"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/utils"
	"gorm.io/gorm"
)

func main() {
	pharmacyId := flag.String("pharmacy-id", "", "Optional: rebuild a single pharmacy (uuid)")
	dryRun := flag.Bool("dry-run", false, "Report drift without writing")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	ctx := utils.SetSkipTenantScopeInContext(context.Background(), true)

	var pharmacyIds []string
	if strings.TrimSpace(*pharmacyId) != "" {
		pharmacyIds = []string{strings.TrimSpace(*pharmacyId)}
	} else {
		if err := db.WithContext(ctx).Model(&models.Pharmacy{}).Pluck("id", &pharmacyIds).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to list pharmacies: %v\n", err)
			os.Exit(1)
		}
	}

	var drift int
	for _, id := range pharmacyIds {
		n, err := rebuildPharmacy(ctx, db, id, *dryRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pharmacy %s: %v\n", id, err)
			os.Exit(1)
		}
		drift += n
	}

	if *dryRun {
		fmt.Printf("dry run: %d counters out of sync across %d pharmacies\n", drift, len(pharmacyIds))
		return
	}
	fmt.Printf("rebuilt %d counters across %d pharmacies\n", drift, len(pharmacyIds))
}

// rebuildPharmacy walks every product of the pharmacy and resets its stock to
// sum(purchased) - sum(sold). Batch quantities are reset the same way:
// initial quantity minus what sales consumed from the batch. Returns the
// number of counters that were out of sync.
func rebuildPharmacy(ctx context.Context, db *gorm.DB, pharmacyId string, dryRun bool) (int, error) {
	drift := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		if err := tx.Where("pharmacy_id = ?", pharmacyId).Find(&products).Error; err != nil {
			return err
		}

		for _, p := range products {
			var purchased, sold int64
			row := tx.Model(&models.PurchaseItem{}).
				Joins("JOIN purchases ON purchases.id = purchase_items.purchase_id").
				Where("purchases.pharmacy_id = ? AND purchase_items.product_id = ?", pharmacyId, p.ID).
				Select("COALESCE(SUM(purchase_items.quantity), 0)")
			if err := row.Scan(&purchased).Error; err != nil {
				return err
			}
			row = tx.Model(&models.SaleItem{}).
				Joins("JOIN sales ON sales.id = sale_items.sale_id").
				Where("sales.pharmacy_id = ? AND sale_items.product_id = ?", pharmacyId, p.ID).
				Select("COALESCE(SUM(sale_items.quantity), 0)")
			if err := row.Scan(&sold).Error; err != nil {
				return err
			}

			want := int(purchased - sold)
			if want == p.CurrentStock {
				continue
			}
			drift++
			fmt.Printf("pharmacy %s product %d: stock %d -> %d\n", pharmacyId, p.ID, p.CurrentStock, want)
			if dryRun {
				continue
			}
			if err := tx.Model(&models.Product{}).Where("id = ?", p.ID).
				UpdateColumn("current_stock", want).Error; err != nil {
				return err
			}
		}

		var batches []models.BatchItem
		if err := tx.Where("pharmacy_id = ?", pharmacyId).Find(&batches).Error; err != nil {
			return err
		}
		for _, b := range batches {
			var consumed int64
			err := tx.Model(&models.SaleItem{}).
				Where("batch_item_id = ?", b.ID).
				Select("COALESCE(SUM(quantity), 0)").Scan(&consumed).Error
			if err != nil {
				return err
			}

			want := b.InitialQuantity - int(consumed)
			if want == b.CurrentQuantity {
				continue
			}
			drift++
			fmt.Printf("pharmacy %s batch %d: quantity %d -> %d\n", pharmacyId, b.ID, b.CurrentQuantity, want)
			if dryRun {
				continue
			}
			if err := tx.Model(&models.BatchItem{}).Where("id = ?", b.ID).
				UpdateColumn("current_quantity", want).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return drift, err
}
