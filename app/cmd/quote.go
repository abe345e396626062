package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/Rakhulsr/go-cart/app/configs"
	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/services"
	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/Rakhulsr/go-cart/app/utils/calc"
	"github.com/Rakhulsr/go-cart/app/utils/format"
	"go.uber.org/zap"
)

// quoteFile is the cart file read by the quote command. An item whose
// max_stock is omitted or 0 is not stock-limited.
type quoteFile struct {
	Items []models.CartItem `json:"items"`
}

func readQuoteFile(path string) ([]models.CartItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f quoteFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i := range f.Items {
		item := &f.Items[i]
		switch {
		case item.MaxStock < 0:
			return nil, fmt.Errorf("item %s: max_stock must not be negative", item.ID)
		case item.MaxStock == 0:
			item.MaxStock = math.MaxInt32
		}
	}
	return f.Items, nil
}

// quote prices items with an optional promo and writes the summary to w.
func quote(w io.Writer, calculator *calc.Calculator, promoSvc *services.PromoService, items []models.CartItem, promoCode string) error {
	st := store.New(calculator, nil, store.WithPromoCheck(promoSvc.Eligible))
	units := make(map[string]int)
	for _, item := range items {
		action, err := store.NewAddItem(item)
		if err != nil {
			return fmt.Errorf("item %s: %w", item.ID, err)
		}
		// stock is shared by every variant line of a product
		if units[item.ID]+item.Quantity > item.MaxStock || !st.Dispatch(action) {
			return fmt.Errorf("item %s: %d units exceed max_stock %d", item.ID, units[item.ID]+item.Quantity, item.MaxStock)
		}
		units[item.ID] += item.Quantity
	}

	if promoCode != "" {
		promo, err := promoSvc.Resolve(promoCode, st.Cart())
		if err != nil {
			return fmt.Errorf("%s: %w", services.PromoMessage(err), err)
		}
		action, err := store.NewApplyPromo(*promo)
		if err != nil {
			return err
		}
		st.Dispatch(action)
	}

	cart := st.Cart()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, it := range cart.Items {
		fmt.Fprintf(tw, "%s\t%d x %s\t%s\t\n", it.Name, it.Quantity, format.Money(it.Price), format.Money(it.LineTotal()))
	}
	s := cart.Summary
	fmt.Fprintf(tw, "\t\t\t\n")
	fmt.Fprintf(tw, "Subtotal\t\t%s\t\n", format.Money(s.Subtotal))
	fmt.Fprintf(tw, "Tax (%s)\t\t%s\t\n", format.Percent(calculator.Config().TaxRate), format.Money(s.Tax))
	fmt.Fprintf(tw, "Shipping\t\t%s\t\n", format.Money(s.Shipping))
	if cart.Promo != nil {
		fmt.Fprintf(tw, "Discount (%s)\t\t-%s\t\n", cart.Promo.Code, format.Money(s.Discount))
	}
	fmt.Fprintf(tw, "Total\t\t%s\t\n", format.Money(s.Total))
	return tw.Flush()
}

func newCalculator(env configs.ENV, logger *zap.Logger) *calc.Calculator {
	return calc.NewCalculator(env.Pricing(logger))
}

func newPromoService(logger *zap.Logger) (*services.PromoService, error) {
	return services.NewPromoService(services.DefaultPromoCodes(), logger)
}
