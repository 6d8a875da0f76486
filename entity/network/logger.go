package network

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "network")
