package cli

import (
	"fmt"

	"github.com/klothoplatform/servgraph/pkg/multierr"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/yaml_util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type ErrorHandler struct {
	Log           *zap.Logger
	Verbose       bool
	PostPrintHook func()
}

func (h ErrorHandler) PrintErr(err error) {
	h.printErr(err, 0)
	if h.PostPrintHook != nil {
		h.PostPrintHook()
	}
}

func (h ErrorHandler) log() *zap.Logger {
	if h.Log == nil {
		return zap.L()
	}
	return h.Log
}

func (h ErrorHandler) printErr(err error, num int) (nextNum int) {
	log := h.log()

	errFmt := "%v"
	if h.Verbose {
		errFmt = "%+v"
	}

	if merr, ok := err.(multierr.Error); ok {
		switch len(merr) {
		case 0:
			return num

		case 1:
			err = merr[0]

		default:
			log.Sugar().Errorf("%d errors:", len(merr))
			for _, err := range merr {
				num = h.printErr(err, num)
			}
			return num
		}
	}
	num++

	var nodeErr *render.NodeError
	if errors.As(err, &nodeErr) {
		log.Error(
			fmt.Sprintf("[err %d] "+errFmt, num, nodeErr.Cause),
			zap.String("node", nodeErr.NodeID),
			zap.String("type", string(nodeErr.NodeType)),
		)
		return num
	}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		for _, msg := range yaml_util.YamlErrors(typeErr) {
			log.Sugar().Errorf("[err %d] %s", num, msg)
		}
		return num
	}

	log.Sugar().Errorf("[err %d] "+errFmt, num, err)
	return num
}
