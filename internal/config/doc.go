// Package config loads micro server configuration.
//
// The configuration lives in micro.json or micro.yaml next to the binary's
// working directory. Every field is optional; missing values take the
// defaults set by New.
//
// # Configuration File Structure
//
//	{
//	  "name": "todo",
//	  "server": {
//	    "addr": ":8080",
//	    "readLimit": 65536,
//	    "pingInterval": "30s",
//	    "shutdownTimeout": "10s"
//	  },
//	  "store": {
//	    "driver": "sqlite",
//	    "dsn": "micro.db"
//	  },
//	  "mountPolicy": "ignore",
//	  "reactive": {
//	    "maxUpdateDepth": 100
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// The same keys are accepted in YAML:
//
//	store:
//	  driver: s3
//	  bucket: my-todos
//	  region: eu-west-1
//	  endpoint: http://localhost:9000
//	  pathStyle: true
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Server.Addr)
package config
