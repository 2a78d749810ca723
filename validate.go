package rackspace

import (
	"fmt"
	"net/netip"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterStructValidation(validateRecordData, Record{})
}

// validateRecordData checks that address records carry an address of the right family.
func validateRecordData(sl validator.StructLevel) {
	r := sl.Current().Interface().(Record)

	var tag string
	var ok bool

	switch r.Type {
	case TypeA:
		tag = "ipv4"
		addr, err := netip.ParseAddr(r.Data)
		ok = err == nil && addr.Is4()
	case TypeAAAA:
		tag = "ipv6"
		addr, err := netip.ParseAddr(r.Data)
		ok = err == nil && addr.Is6() && !addr.Is4In6()
	case TypePTR:
		tag = "ip"
		_, err := netip.ParseAddr(r.Data)
		ok = err == nil
	default:
		return
	}

	if !ok {
		sl.ReportError(r.Data, "Data", "Data", tag, r.Type)
	}
}

// Validate checks the record against the limits the API enforces.
func (r *Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation error: record %s %s: %w", r.Type, r.Name, err)
	}
	return nil
}

// Validate checks the domain and its nested records and subdomains.
func (d *Domain) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("validation error: domain %s: %w", d.Name, err)
	}

	if err := d.Records.Validate(); err != nil {
		return fmt.Errorf("domain %s: %w", d.Name, err)
	}

	if err := d.Subdomains.Validate(); err != nil {
		return fmt.Errorf("domain %s: %w", d.Name, err)
	}

	return nil
}

// Validate checks every record in the list.
func (l *RecordList) Validate() error {
	if l == nil {
		return nil
	}
	for _, r := range l.All() {
		if r == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every domain in the list.
func (l *DomainList) Validate() error {
	if l == nil {
		return nil
	}
	for _, d := range l.All() {
		if d == nil {
			continue
		}
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}
