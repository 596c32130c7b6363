// token emite un JWT para un operario o administrador usando JWT_SECRET de la configuración.
//
// Uso: go run ./cmd/token -user ana -role operario [-minutes 480]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/tenebrio-farm/pkg/config"
	"github.com/jhoicas/tenebrio-farm/pkg/jwt"
)

func main() {
	user := flag.String("user", "", "identificador del usuario (obligatorio)")
	role := flag.String("role", jwt.RoleOperario, "rol: admin | operario")
	minutes := flag.Int("minutes", 0, "validez en minutos (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "-user es obligatorio")
		os.Exit(2)
	}
	if *role != jwt.RoleAdmin && *role != jwt.RoleOperario {
		fmt.Fprintf(os.Stderr, "rol inválido: %s\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
