package main

import (
	sdkmath "cosmossdk.io/math"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/infinity-amm/ipool/internal/config"
	"github.com/infinity-amm/ipool/internal/logger"
	"github.com/infinity-amm/ipool/internal/pool"
	"github.com/infinity-amm/ipool/internal/state"
	"github.com/infinity-amm/ipool/internal/types"
	"github.com/infinity-amm/ipool/internal/utils"
	"github.com/infinity-amm/ipool/internal/web"
)

// Demo token precision: amounts below are ledger-style integer base units
// with 6 decimals, converted to engine quantities at the boundary.
const demoPrecision = 6

// main is a demonstration entry point. It walks a pool through every engine
// operation, logging state after each step, and optionally persists snapshots
// and serves the read-only dashboard. It moves no funds anywhere.
func main() {
	// --- 1. Initialization Phase ---
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Warning: .env file not found. Relying on OS environment variables.")
	}

	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Initialize(config.LogLevel)
	log.Info().Msg("Invariant Pool Engine demo starting...")

	if config.PersistenceEnabled {
		dbCfg := state.DBConfig{
			Host: config.DBHost, Port: config.DBPort,
			User: config.DBUser, Password: config.DBPassword,
			DBName: config.DBName, SSLMode: config.DBSSLMode,
		}
		if err := state.InitDB(dbCfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer state.CloseDB()
		if err := state.EnsureSchema(); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure database schema")
		}
	}

	// --- 2. Pool Construction ---
	p, err := pool.New(config.PoolTokens)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to construct pool")
	}
	logStatus(p.Status(), "Pool constructed (unweighted)")

	// --- 3. Demo Walkthrough ---
	// Initial deposit: 1, 2 and 3 whole tokens in base units.
	initial := make(map[string]float64, len(config.PoolTokens))
	for i, token := range config.PoolTokens {
		baseUnits := sdkmath.NewInt(int64(i+1) * 1_000_000)
		quantity, err := utils.BaseUnitsToQuantity(baseUnits, demoPrecision)
		if err != nil {
			log.Fatal().Err(err).Str("token", token).Msg("Failed to convert initial amount")
		}
		initial[token] = quantity
	}
	if err := p.Initialize(initial); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize pool")
	}
	logStatus(p.Status(), "Initialized")
	persistSnapshot(p)

	first := config.PoolTokens[0]
	second := config.PoolTokens[1]

	price, err := p.SpotPrice(first, second)
	if err != nil {
		log.Fatal().Err(err).Msg("Spot price failed")
	}
	log.Info().Str("asset", first).Str("currency", second).Float64("spot_price", price).Msg("Spot price")

	// Proportional deposit: 10% of every balance.
	proportional := make(map[string]float64, len(config.PoolTokens))
	for token, balance := range p.Status().Balances {
		proportional[token] = balance * 0.10
	}
	shares, err := p.DepositAll(proportional)
	if err != nil {
		log.Fatal().Err(err).Msg("deposit_all failed")
	}
	log.Info().Float64("shares_to_issue", shares).Msg("deposit_all")
	persistSnapshot(p)

	// Single-token deposit.
	single := zeroVector(config.PoolTokens)
	single[first] = 0.1
	shares, err = p.DepositOne(single)
	if err != nil {
		log.Fatal().Err(err).Msg("deposit_one failed")
	}
	log.Info().Float64("shares_to_issue", shares).Msg("deposit_one")

	// Arbitrary-ratio deposit (still proportional within tolerance).
	any := make(map[string]float64, len(config.PoolTokens))
	for token, balance := range p.Status().Balances {
		any[token] = balance * 0.05
	}
	shares, err = p.DepositAny(any)
	if err != nil {
		log.Fatal().Err(err).Msg("deposit_any failed")
	}
	log.Info().Float64("shares_to_issue", shares).Msg("deposit_any")
	logStatus(p.Status(), "After deposits")
	persistSnapshot(p)

	// Withdrawals.
	amountsOut, err := p.WithdrawAll(20.0)
	if err != nil {
		log.Fatal().Err(err).Msg("withdraw_all failed")
	}
	log.Info().Interface("amounts_out", amountsOut).Msg("withdraw_all")

	amountOut, err := p.WithdrawOne(first, 20.0)
	if err != nil {
		log.Fatal().Err(err).Msg("withdraw_one failed")
	}
	log.Info().Str("token", first).Float64("amount_out", amountOut).Msg("withdraw_one")

	ratios := make(map[string]float64, len(config.PoolTokens))
	for token, balance := range p.Status().Balances {
		ratios[token] = balance
	}
	amountsOut, err = p.WithdrawAny(20.0, ratios)
	if err != nil {
		log.Fatal().Err(err).Msg("withdraw_any failed")
	}
	log.Info().Interface("amounts_out", amountsOut).Msg("withdraw_any")
	logStatus(p.Status(), "After withdrawals")
	persistSnapshot(p)

	// Swap along the invariant curve.
	swapOut, err := p.Swap(first, second, 0.1)
	if err != nil {
		log.Fatal().Err(err).Msg("swap failed")
	}
	log.Info().
		Str("token_in", first).
		Str("token_out", second).
		Float64("amount_in", 0.1).
		Float64("amount_out", swapOut).
		Msg("swap")

	// Equalize: combined deposit-and-rebalance with proportional vectors.
	inputs := make(map[string]float64, len(config.PoolTokens))
	ratioOut := make(map[string]float64, len(config.PoolTokens))
	for token, balance := range p.Status().Balances {
		inputs[token] = balance * 0.02
		ratioOut[token] = balance
	}
	amountsOut, err = p.Equalize(inputs, ratioOut)
	if err != nil {
		log.Fatal().Err(err).Msg("equalize failed")
	}
	log.Info().Interface("amounts_out", amountsOut).Msg("equalize")
	logStatus(p.Status(), "Final state")
	persistSnapshot(p)

	// --- 4. Dashboard ---
	if config.WebPort == "" {
		log.Info().Msg("IPOOL_WEB_PORT not set, demo complete.")
		return
	}

	webServer := web.NewWebServer(config.WebPort, p, config.PersistenceEnabled)
	log.Info().Str("port", config.WebPort).Str("url", "http://localhost:"+config.WebPort).Msg("Starting pool dashboard")
	if err := webServer.Start(); err != nil {
		log.Fatal().Err(err).Msg("Web server failed")
	}
}

// logStatus logs a full pool snapshot at info level.
func logStatus(status types.PoolStatus, msg string) {
	log.Info().
		Strs("tokens", status.Tokens).
		Interface("weights", status.Weights).
		Interface("balances", status.Balances).
		Float64("shares_issued", status.SharesIssued).
		Float64("invariant", status.Invariant).
		Msg(msg)
}

// persistSnapshot saves the current pool status when persistence is enabled.
func persistSnapshot(p *pool.Pool) {
	if !config.PersistenceEnabled {
		return
	}
	if _, err := state.SavePoolSnapshot(p.Status()); err != nil {
		log.Error().Err(err).Msg("Failed to persist pool snapshot")
	}
}

// zeroVector returns a full token vector of zeros.
func zeroVector(tokens []string) map[string]float64 {
	vec := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		vec[token] = 0
	}
	return vec
}
