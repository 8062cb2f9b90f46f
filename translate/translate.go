// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package translate formats user-facing messages through a printer
// matched to the host's locale.
package translate

import (
	"github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is the language used when the host's locale is unknown.
var Fallback = language.AmericanEnglish

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		logrus.WithError(err).Debug("locale lookup failed")
	}

	tag := Fallback
	if len(locales) > 0 {
		tag = message.MatchLanguage(locales...)
	}
	printer = message.NewPrinter(tag)
}

// From formats an en-US Sprintf-style key in the host's language.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
