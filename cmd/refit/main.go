package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/lisongmechlab/lsml-sub001/internal/armor"
	"github.com/lisongmechlab/lsml-sub001/internal/autoplace"
	"github.com/lisongmechlab/lsml-sub001/internal/catalog"
	"github.com/lisongmechlab/lsml-sub001/internal/command"
	"github.com/lisongmechlab/lsml-sub001/internal/config"
	"github.com/lisongmechlab/lsml-sub001/internal/ingestion"
	"github.com/lisongmechlab/lsml-sub001/internal/loadout"
	"github.com/lisongmechlab/lsml-sub001/internal/logger"
	"github.com/lisongmechlab/lsml-sub001/internal/messages"
	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

type listFlag []string

func (f *listFlag) String() string { return strings.Join(*f, ",") }

func (f *listFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	mtf := flag.String("mtf", "", "Stock .mtf file to start from")
	chassisName := flag.String("chassis", "", "Chassis to start empty from (ignored with -mtf)")
	var adds listFlag
	flag.Var(&adds, "add", "Item to auto-place (repeatable)")
	points := flag.Int("armor", -1, "Distribute this many armor points")
	maxArmor := flag.Bool("max-armor", false, "Distribute maximum armor")
	ratio := flag.Float64("ratio", 3, "Front:back armor ratio")
	undo := flag.Int("undo", 0, "Undo this many steps before printing")
	verbose := flag.Bool("verbose", false, "Log every change notification")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	logger.Init(cfg.Logging)

	ctx := context.Background()
	cat, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		log.Fatalf("Catalog: %v", err)
	}

	xbar := messages.NewTransmitter()
	if *verbose {
		xbar.Attach(messages.LogRecipient{Logger: slog.Default()})
	}
	stack := command.NewStack(cfg.Editor.UndoDepth)

	var stock *models.StockLoadout
	var chassis *models.Chassis
	if *mtf != "" {
		var unresolved []string
		stock, unresolved, err = stockOf(cat, *mtf)
		if err != nil {
			log.Fatalf("Stock: %v", err)
		}
		for _, name := range unresolved {
			slog.Warn("unresolved crit", "item", name)
		}
		chassis = stock.Chassis
	} else {
		if *chassisName == "" {
			log.Fatal("Usage: -mtf <file.mtf> or -chassis <name>")
		}
		if chassis, err = cat.Chassis(*chassisName); err != nil {
			log.Fatalf("Chassis: %v", err)
		}
	}

	l := loadout.New(chassis)
	l.SetName(chassis.Name)
	if stock != nil {
		if err := stack.PushAndApply(command.NewLoadStock(xbar, l, stock)); err != nil {
			log.Fatalf("Load stock: %v", err)
		}
	}

	for _, name := range adds {
		item, err := cat.Item(name)
		if err != nil {
			log.Fatalf("Add: %v", err)
		}
		if err := stack.PushAndApply(autoplace.AutoAdd(xbar, l, item, false)); err != nil {
			var eqErr *loadout.EquipError
			if errors.As(err, &eqErr) {
				fmt.Fprintf(os.Stderr, "cannot add %s: %s\n", item.Name, eqErr.Result)
				continue
			}
			log.Fatalf("Add %s: %v", item.Name, err)
		}
	}

	switch {
	case *maxArmor:
		err = stack.PushAndApply(armor.SetMaxArmor(xbar, l, *ratio))
	case *points >= 0:
		err = stack.PushAndApply(armor.Distribute(xbar, l, *points, *ratio))
	}
	if err != nil {
		log.Fatalf("Armor: %v", err)
	}

	for i := 0; i < *undo; i++ {
		desc, _ := stack.UndoDescription()
		if !stack.Undo() {
			break
		}
		fmt.Printf("undid: %s\n", desc)
	}

	printLoadout(os.Stdout, l)
}

func stockOf(cat catalog.Catalog, path string) (*models.StockLoadout, []string, error) {
	data, err := ingestion.ParseMTF(path)
	if err != nil {
		return nil, nil, err
	}
	return ingestion.Resolve(data, cat)
}

func printLoadout(w io.Writer, l *loadout.Loadout) {
	fmt.Fprintf(w, "%s  mass %.2f/%.0ft  slots %d/%d  armor %d/%d\n",
		l.Chassis().Name, l.Mass(), l.Chassis().Mass,
		l.UsedSlots(), l.Chassis().TotalSlots(), l.TotalArmor(), l.Chassis().MaxArmor())
	for _, c := range l.Components() {
		armorText := fmt.Sprintf("%d", c.Armor(models.ArmorOnly))
		if c.Location().TwoSided() {
			armorText = fmt.Sprintf("%d/%d", c.Armor(models.ArmorFront), c.Armor(models.ArmorBack))
		}
		var names []string
		for _, it := range c.Items() {
			if !it.IsInternal() {
				names = append(names, it.Name)
			}
		}
		fmt.Fprintf(w, "  %s  %-7s  %2d free  %s\n", c.Location().ShortName(), armorText, c.FreeSlots(), strings.Join(names, ", "))
	}
}
