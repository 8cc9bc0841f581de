package main

import (
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/sparkfund/uspec"
	"github.com/sparkfund/uspec/charseq"
	"github.com/sparkfund/uspec/decimal"
	"github.com/sparkfund/uspec/inet"
)

// registerBuiltins populates the process-wide registry. This is the one
// initialization point; no package registers itself on import.
func registerBuiltins() {
	uspec.Register("host-part", inet.HostPart())
	uspec.Register("hostname", lo.Must(inet.Hostname(inet.HostnameConfig{})))
	uspec.Register("fully-qualified-hostname", inet.FullyQualified())
	uspec.Register("common-hostname", inet.Common())
	uspec.Register("local-email-part", inet.LocalEmailPart())
	uspec.Register("email", lo.Must(inet.Email(inet.EmailConfig{})))
	uspec.Register("url", lo.Must(inet.URL(inet.URLConfig{})))
	uspec.Register("decimal", lo.Must(decimal.Strings(decimal.Config{})))
	// Currency-style amounts: up to 12 significant digits, 2 of them cents.
	uspec.Register("money", lo.Must(decimal.Strings(decimal.Config{
		Precision: mo.Some(int32(12)),
		Scale:     mo.Some(int32(2)),
	})))
	// Identifier-shaped strings: 1-32 letters or digits.
	uspec.Register("token", charseq.AsString(lo.Must(charseq.New(charseq.Config{
		MinCount: mo.Some(1),
		MaxCount: mo.Some(32),
	}))))
}
