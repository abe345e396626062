package configs

import (
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// HasMidtrans reports whether payment keys are configured.
func (e ENV) HasMidtrans() bool {
	return e.MIDTRANS_SERVER_KEY != ""
}

func NewMidtransSnapClient(env ENV) snap.Client {
	var client snap.Client
	mode := midtrans.Sandbox
	if env.IsProduction() {
		mode = midtrans.Production
	}
	client.New(env.MIDTRANS_SERVER_KEY, mode)
	return client
}
