package motionprimitives

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "motionprimitives")
