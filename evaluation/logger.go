package evaluation

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "evaluation")
