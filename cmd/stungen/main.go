// Command stungen builds a STUN binding request offline and hex-dumps
// the wire bytes. Credentials may be supplied through an INI file:
//
//	[credentials]
//	realm    = example.org
//	username = alice
//	password = hunter2
//	nonce    = 6e6f6e6365
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/LukaGiorgadze/gonull"
	"gopkg.in/ini.v1"

	"github.com/icemesh/wire/types/stun"
)

const software = "icemesh-wire"

func main() {
	log.SetFlags(0)

	credsPath := flag.String("creds", "", "INI file with a [credentials] section")
	size := flag.Int("size", 1280, "message buffer size in bytes")
	flag.Parse()

	var creds stun.Credentials
	if *credsPath != "" {
		var err error
		creds, err = loadCredentials(*credsPath)
		if err != nil {
			log.Fatalf("loading credentials: %v", err)
		}
		slog.Info("loaded credentials", "path", *credsPath,
			"realm", creds.Realm.Valid, "username", creds.Username.Valid)
	}

	buf := make([]byte, *size)
	stun.InitRequest(buf, stun.MethodBinding)
	if err := stun.AppendString(buf, stun.AttrSoftware, software); err != nil {
		log.Fatal(err)
	}

	n, err := stun.FinishLong(buf, creds)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("binding request, %d bytes, txid %x\n", n, stun.TransactionID(buf))
	os.Stdout.WriteString(hex.Dump(buf[:n]))
}

func loadCredentials(path string) (stun.Credentials, error) {
	var creds stun.Credentials

	cfg, err := ini.Load(path)
	if err != nil {
		return creds, err
	}
	sec := cfg.Section("credentials")

	if k := sec.Key("realm"); k.String() != "" {
		creds.Realm = gonull.NewNullable(k.String())
	}
	if k := sec.Key("username"); k.String() != "" {
		creds.Username = gonull.NewNullable(k.String())
	}
	if k := sec.Key("password"); k.String() != "" {
		creds.Key = []byte(k.String())
	}
	if k := sec.Key("nonce"); k.String() != "" {
		nonce, err := hex.DecodeString(k.String())
		if err != nil {
			return creds, fmt.Errorf("nonce is not hex: %w", err)
		}
		creds.Nonce = gonull.NewNullable(nonce)
	}
	return creds, nil
}
