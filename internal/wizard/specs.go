package wizard

import (
	"github.com/rostart/rostart/internal/catalog"
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/locale"
)

type SpecRow struct {
	Label string
	Value string
}

// DisplaySpecs pairs each hardware label with the pushed value, or the
// bundle placeholder when that field is empty. specs may be nil.
func DisplaySpecs(specs *host.SystemSpecs, b *locale.Bundle) []SpecRow {
	var s host.SystemSpecs
	if specs != nil {
		s = *specs
	}
	labels := b.DriverUpdates.Specs

	return []SpecRow{
		{Label: labels.CPU, Value: orDefault(s.CPU, labels.CPUVal)},
		{Label: labels.GPU, Value: orDefault(s.GPU, labels.GPUVal)},
		{Label: labels.RAM, Value: orDefault(s.RAM, labels.RAMVal)},
		{Label: labels.Storage, Value: orDefault(s.Storage, labels.StorageVal)},
	}
}

// SystemName is the distro name shown on the ready step.
func SystemName(specs *host.SystemSpecs) string {
	if specs == nil {
		return catalog.Info.AppName
	}
	return orDefault(specs.Distro, catalog.Info.AppName)
}

func SystemVersion(specs *host.SystemSpecs) string {
	if specs == nil {
		return catalog.Info.Version
	}
	return orDefault(specs.Version, catalog.Info.Version)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
