package primitives

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "primitives")
