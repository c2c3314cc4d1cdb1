package console

import (
	"fmt"
	"io"

	"github.com/abgdnv/stockmanager/internal/inventory/service"
	"github.com/abgdnv/stockmanager/internal/inventory/store"
)

const divider = "--------------------"

// Display writes one product as shown in the product list.
// Electronics get an extra warranty line.
func Display(w io.Writer, p service.ProductDto) error {
	if _, err := fmt.Fprintf(w, "ID: %d, Name: %s, Quantity: %d, Price: $%s\n",
		p.ID, p.Name, p.Quantity, p.Price.StringFixed(2)); err != nil {
		return err
	}
	switch p.Kind {
	case store.KindElectronics:
		_, err := fmt.Fprintf(w, "Warranty: %s\n", p.Warranty)
		return err
	default:
		return nil
	}
}

// kindLabel is the product kind as used in the add flow messages.
func kindLabel(k store.Kind) string {
	if k == store.KindElectronics {
		return "Electronics"
	}
	return "General"
}
