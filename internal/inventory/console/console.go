// Package console implements the interactive stock management menu.
//
// The menu loop reads a numbered choice, runs the matching action and
// returns to the menu until the user picks Exit or input ends. Every input
// problem (non-numeric, negative, unknown or duplicate id) is reported and
// recovered inside the current action.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	inverrors "github.com/abgdnv/stockmanager/internal/inventory/errors"
	"github.com/abgdnv/stockmanager/internal/inventory/service"
	"github.com/abgdnv/stockmanager/internal/inventory/store"
)

// Variant selects the feature set of the menu.
type Variant string

const (
	// VariantFull offers add, view, update and delete and keeps asking for an id until it is unique.
	VariantFull Variant = "full"
	// VariantBasic offers add and view only and takes the first id entered.
	VariantBasic Variant = "basic"
)

type menuItem struct {
	label string
	// action is nil for Exit.
	action func(ctx context.Context) error
}

// Console drives the menu over a text input and output.
type Console struct {
	service service.InventoryService
	input   io.Reader
	in      *lineReader
	out     io.Writer
	logger  *slog.Logger
	variant Variant
	menu    []menuItem
	maxLine int
}

// New creates a Console. Unknown variants fall back to VariantFull.
func New(svc service.InventoryService, in io.Reader, out io.Writer, logger *slog.Logger, variant Variant) *Console {
	if variant != VariantBasic {
		variant = VariantFull
	}
	c := &Console{
		service: svc,
		input:   in,
		out:     out,
		logger:  logger.With("component", "console", "variant", string(variant)),
		variant: variant,
		maxLine: maxLineBytes,
	}
	c.menu = c.buildMenu()
	return c
}

func (c *Console) buildMenu() []menuItem {
	items := []menuItem{
		{label: "Add General Product", action: c.addGeneralProduct},
		{label: "Add Electronics Product", action: c.addElectronicsProduct},
		{label: "View All Products", action: c.viewAllProducts},
	}
	if c.variant == VariantFull {
		items = append(items,
			menuItem{label: "Update Product", action: c.updateProduct},
			menuItem{label: "Delete Product", action: c.deleteProduct},
		)
	}
	return append(items, menuItem{label: "Exit"})
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// Exit and end of input return nil; cancellation returns the context error.
// Run must be called at most once.
func (c *Console) Run(ctx context.Context) error {
	c.in = newLineReader(c.input, c.maxLine)
	defer c.in.close()

	c.logger.DebugContext(ctx, "Console started")
	for {
		c.displayMenu()
		choice, err := c.readChoice(ctx)
		if err != nil {
			return c.stop(ctx, err)
		}
		exit, err := c.dispatch(ctx, choice)
		if err != nil {
			return c.stop(ctx, err)
		}
		c.println()
		if exit {
			c.logger.DebugContext(ctx, "Console exited by user")
			return nil
		}
	}
}

func (c *Console) stop(ctx context.Context, err error) error {
	if errors.Is(err, io.EOF) {
		c.logger.InfoContext(ctx, "Input closed, leaving the menu")
		return nil
	}
	c.logger.InfoContext(ctx, "Console stopped", "error", err)
	return err
}

func (c *Console) displayMenu() {
	c.println("--- Stock Management System ---")
	for i, item := range c.menu {
		c.printf("%d. %s\n", i+1, item.label)
	}
	c.print("Enter your choice: ")
}

// dispatch runs the action for choice and reports whether the user asked to exit.
func (c *Console) dispatch(ctx context.Context, choice int) (bool, error) {
	if choice < 1 || choice > len(c.menu) {
		c.printf("Invalid choice. Please enter a number between 1 and %d.\n", len(c.menu))
		return false, nil
	}
	item := c.menu[choice-1]
	if item.action == nil {
		c.println("Exiting Stock Management System. Goodbye!")
		return true, nil
	}
	c.logger.DebugContext(ctx, "Menu action selected", "choice", choice, "action", item.label)
	return false, item.action(ctx)
}

func (c *Console) addGeneralProduct(ctx context.Context) error {
	c.println("\n--- Add General Product ---")
	return c.addProduct(ctx, store.KindGeneral)
}

func (c *Console) addElectronicsProduct(ctx context.Context) error {
	c.println("\n--- Add Electronics Product ---")
	return c.addProduct(ctx, store.KindElectronics)
}

func (c *Console) addProduct(ctx context.Context, kind store.Kind) error {
	id, err := c.readProductID(ctx)
	if err != nil {
		return err
	}
	product := service.ProductDto{ID: id, Kind: kind}
	if product.Name, err = c.readString(ctx, "Enter Product Name: "); err != nil {
		return err
	}
	if product.Quantity, err = c.readInt(ctx, "Enter Quantity: "); err != nil {
		return err
	}
	if product.Price, err = c.readDecimal(ctx, "Enter Price: "); err != nil {
		return err
	}
	if kind == store.KindElectronics {
		if product.Warranty, err = c.readString(ctx, "Enter Warranty Period (e.g., 1 year, 6 months): "); err != nil {
			return err
		}
	}

	created, err := c.service.Create(ctx, product)
	if err != nil {
		if errors.Is(err, inverrors.ErrDuplicateID) {
			c.printf("Product with ID %d already exists. Product not added.\n", id)
			return nil
		}
		c.printf("Error: %v. Product not added.\n", err)
		return nil
	}
	c.printf("%s Product '%s' added successfully!\n", kindLabel(kind), created.Name)
	return nil
}

// readProductID asks for an id. The full variant keeps asking until the id is not taken.
func (c *Console) readProductID(ctx context.Context) (int, error) {
	for {
		id, err := c.readInt(ctx, "Enter Product ID: ")
		if err != nil {
			return 0, err
		}
		if c.variant == VariantBasic || !c.service.Exists(ctx, id) {
			return id, nil
		}
		c.printf("Product with ID %d already exists. Please enter a unique ID.\n", id)
	}
}

func (c *Console) viewAllProducts(ctx context.Context) error {
	if c.service.Count(ctx) == 0 {
		c.println("No products available in the system.")
		return nil
	}
	c.println("\n--- Product List ---")
	for product := range c.service.FindAll(ctx) {
		if err := Display(c.out, product); err != nil {
			return fmt.Errorf("display product %d: %w", product.ID, err)
		}
		c.println(divider)
	}
	return nil
}

func (c *Console) updateProduct(ctx context.Context) error {
	c.println("\n--- Update Product ---")
	if c.service.Count(ctx) == 0 {
		c.println("No products to update.")
		return nil
	}

	id, err := c.readInt(ctx, "Enter the ID of the product to update: ")
	if err != nil {
		return err
	}
	product, err := c.service.FindByID(ctx, id)
	if err != nil {
		c.reportError(ctx, id, err, "")
		return nil
	}

	c.printf("Current details for product ID %d:\n", id)
	if err := Display(c.out, *product); err != nil {
		return fmt.Errorf("display product %d: %w", id, err)
	}
	c.println("\nWhat do you want to update?")
	c.println("1. Quantity")
	c.println("2. Price")
	c.print("Enter your choice: ")
	choice, err := c.readChoice(ctx)
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		quantity, err := c.readInt(ctx, "Enter new Quantity: ")
		if err != nil {
			return err
		}
		if _, err := c.service.UpdateQuantity(ctx, id, quantity); err != nil {
			c.reportError(ctx, id, err, "Quantity")
			return nil
		}
		c.printf("Quantity updated for product '%s'.\n", product.Name)
	case 2:
		price, err := c.readDecimal(ctx, "Enter new Price: ")
		if err != nil {
			return err
		}
		if _, err := c.service.UpdatePrice(ctx, id, price); err != nil {
			c.reportError(ctx, id, err, "Price")
			return nil
		}
		c.printf("Price updated for product '%s'.\n", product.Name)
	default:
		c.println("Invalid update choice. No changes made.")
	}
	return nil
}

func (c *Console) deleteProduct(ctx context.Context) error {
	c.println("\n--- Delete Product ---")
	if c.service.Count(ctx) == 0 {
		c.println("No products to delete.")
		return nil
	}

	id, err := c.readInt(ctx, "Enter the ID of the product to delete: ")
	if err != nil {
		return err
	}
	removed, err := c.service.DeleteByID(ctx, id)
	if err != nil {
		c.reportError(ctx, id, err, "")
		return nil
	}
	c.printf("Product '%s' (ID: %d) deleted successfully!\n", removed.Name, id)
	return nil
}

// reportError prints the user-facing message for a failed lookup or update of field.
func (c *Console) reportError(ctx context.Context, id int, err error, field string) {
	switch {
	case errors.Is(err, inverrors.ErrProductNotFound):
		c.printf("Product with ID %d not found.\n", id)
	case errors.Is(err, inverrors.ErrNegativeQuantity), errors.Is(err, inverrors.ErrNegativePrice):
		c.printf("Error: %s cannot be negative. Value not updated.\n", field)
	default:
		c.logger.ErrorContext(ctx, "Unexpected inventory error", "ID", id, "error", err)
		c.printf("Error: %v\n", err)
	}
}

func (c *Console) print(a ...any) {
	_, _ = fmt.Fprint(c.out, a...)
}

func (c *Console) println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}
