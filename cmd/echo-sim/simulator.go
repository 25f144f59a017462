package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/celestiaorg/echo"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/internal/config"
	"github.com/celestiaorg/echo/ledger"
	"github.com/celestiaorg/echo/token"
)

type simulator struct {
	cfg       *config.Config
	log       zerolog.Logger
	out       io.Writer
	ledger    *ledger.Ledger
	programID address.Address
}

func openSimulator(cfg *config.Config, logger zerolog.Logger, out io.Writer) (*simulator, error) {
	programID, err := cfg.Program()
	if err != nil {
		return nil, err
	}
	l := ledger.New(cfg.LedgerOptions(logger)...)
	l.Register(programID, echo.New())
	l.Register(token.ProgramID, token.Program{})

	data, err := os.ReadFile(cfg.StateFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info().Str("state", cfg.StateFile).Msg("starting from an empty ledger")
	case err != nil:
		return nil, err
	default:
		if err := l.Restore(data); err != nil {
			return nil, fmt.Errorf("restore %s: %w", cfg.StateFile, err)
		}
	}
	return &simulator{cfg: cfg, log: logger, out: out, ledger: l, programID: programID}, nil
}

func (s *simulator) save() error {
	data, err := s.ledger.Snapshot()
	if err != nil {
		return err
	}
	root, err := s.ledger.StateRoot()
	if err != nil {
		return err
	}
	s.log.Debug().Str("root", hex.EncodeToString(root[:])).Msg("saving state")
	return os.WriteFile(s.cfg.StateFile, data, 0o600)
}

// payer loads the fee payer from path, or generates one, and funds it.
func (s *simulator) payer(path string) (ed25519.PrivateKey, address.Address, error) {
	priv, key, err := s.keypair(path)
	if err != nil {
		return nil, address.Address{}, err
	}
	s.ledger.Airdrop(key, s.cfg.Airdrop)
	s.log.Info().Str("payer", key.String()).Uint64("lamports", s.cfg.Airdrop).Msg("airdrop")
	return priv, key, nil
}

func (s *simulator) keypair(path string) (ed25519.PrivateKey, address.Address, error) {
	var (
		priv ed25519.PrivateKey
		err  error
	)
	if path != "" {
		priv, err = config.LoadKeypair(path)
	} else {
		_, priv, err = ed25519.GenerateKey(rand.Reader)
	}
	if err != nil {
		return nil, address.Address{}, err
	}
	key, err := address.FromBytes(priv.Public().(ed25519.PublicKey))
	return priv, key, err
}

func (s *simulator) execute(signers []ed25519.PrivateKey, ixs ...ledger.Instruction) error {
	tx := ledger.NewTransaction(ixs...)
	if err := tx.Sign(signers...); err != nil {
		return err
	}
	return s.ledger.Execute(context.Background(), tx)
}

func (s *simulator) exists(key address.Address) bool {
	_, ok := s.ledger.Account(key)
	return ok
}

func (s *simulator) echo(args []string, f *flags) error {
	if len(args) != 1 {
		return errors.New("echo takes exactly one message")
	}
	message := []byte(args[0])

	payer, payerKey, err := s.payer("")
	if err != nil {
		return err
	}
	buffer, bufferKey, err := s.keypair(f.keypair)
	if err != nil {
		return err
	}
	var ixs []ledger.Instruction
	signers := []ed25519.PrivateKey{payer}
	if !s.exists(bufferKey) {
		size := uint64(len(message))
		ixs = append(ixs, ledger.CreateAccount(payerKey, bufferKey, s.ledger.Rent().MinimumBalance(size), size, s.programID))
		signers = append(signers, buffer)
	}
	ixs = append(ixs, echo.NewEchoInstruction(s.programID, bufferKey, message))
	if err := s.execute(signers, ixs...); err != nil {
		return err
	}
	acct, _ := s.ledger.Account(bufferKey)
	fmt.Fprintf(s.out, "buffer: %s\n", bufferKey)
	fmt.Fprintf(s.out, "Echo Buffer Text: %s\n", acct.Data)
	return nil
}

func (s *simulator) authorizedEcho(args []string, f *flags) error {
	if len(args) != 1 {
		return errors.New("authorized-echo takes exactly one message")
	}
	payer, payerKey, err := s.payer(f.keypair)
	if err != nil {
		return err
	}
	seed := s.cfg.Authorized.Seed
	buffer, _, err := echo.FindAuthorizedBufferAddress(s.programID, payerKey, seed)
	if err != nil {
		return err
	}
	var ixs []ledger.Instruction
	if !s.exists(buffer) {
		ixs = append(ixs, echo.NewInitializeAuthorizedEchoInstruction(s.programID, buffer, payerKey, seed, s.cfg.Authorized.BufferSize))
	}
	ixs = append(ixs, echo.NewAuthorizedEchoInstruction(s.programID, buffer, payerKey, []byte(args[0])))
	if err := s.execute([]ed25519.PrivateKey{payer}, ixs...); err != nil {
		return err
	}
	return s.printPayload("Authorized Echo Buffer Text", buffer)
}

func (s *simulator) getAuthorizedEcho(f *flags) error {
	if f.keypair == "" {
		return errors.New("get-authorized-echo needs --keypair")
	}
	_, key, err := s.keypair(f.keypair)
	if err != nil {
		return err
	}
	buffer, _, err := echo.FindAuthorizedBufferAddress(s.programID, key, s.cfg.Authorized.Seed)
	if err != nil {
		return err
	}
	return s.printPayload("Authorized Echo Buffer Text", buffer)
}

func (s *simulator) vendingEcho(args []string, f *flags) error {
	if len(args) != 1 {
		return errors.New("vending-echo takes exactly one message")
	}
	if f.price == 0 {
		return errors.New("vending-echo needs --price")
	}
	payer, payerKey, err := s.payer(f.keypair)
	if err != nil {
		return err
	}
	mint, tokens, err := s.vendingTokens(payer, payerKey, f)
	if err != nil {
		return err
	}
	buffer, _, err := echo.FindVendingBufferAddress(s.programID, mint, f.price)
	if err != nil {
		return err
	}
	var ixs []ledger.Instruction
	if !s.exists(buffer) {
		ixs = append(ixs, echo.NewInitializeVendingMachineEchoInstruction(s.programID, buffer, mint, payerKey, f.price, s.cfg.Vending.BufferSize))
	}
	ixs = append(ixs, echo.NewVendingMachineEchoInstruction(s.programID, buffer, payerKey, tokens, mint, []byte(args[0])))
	if err := s.execute([]ed25519.PrivateKey{payer}, ixs...); err != nil {
		return err
	}
	return s.printPayload("Vending Machine Echo Buffer Text", buffer)
}

// vendingTokens returns the mint and token account paying for a vending
// write. Without --mint it creates a mint controlled by the payer and a
// token account of the payer holding --mint-amount tokens.
func (s *simulator) vendingTokens(payer ed25519.PrivateKey, payerKey address.Address, f *flags) (address.Address, address.Address, error) {
	if f.mint != "" {
		mint, err := address.FromBase58(f.mint)
		if err != nil {
			return address.Address{}, address.Address{}, fmt.Errorf("--mint: %w", err)
		}
		tokens, err := address.FromBase58(f.tokenAccount)
		if err != nil {
			return address.Address{}, address.Address{}, fmt.Errorf("--token-account: %w", err)
		}
		return mint, tokens, nil
	}

	mint, mintKey, err := s.keypair("")
	if err != nil {
		return address.Address{}, address.Address{}, err
	}
	tokens, tokensKey, err := s.keypair("")
	if err != nil {
		return address.Address{}, address.Address{}, err
	}
	amount := f.mintAmount
	if amount == 0 {
		amount = f.price
	}
	rent := s.ledger.Rent()
	err = s.execute([]ed25519.PrivateKey{payer, mint, tokens},
		ledger.CreateAccount(payerKey, mintKey, rent.MinimumBalance(token.MintSize), token.MintSize, token.ProgramID),
		token.InitializeMint(token.ProgramID, mintKey, 0, payerKey),
		ledger.CreateAccount(payerKey, tokensKey, rent.MinimumBalance(token.AccountSize), token.AccountSize, token.ProgramID),
		token.InitializeAccount(token.ProgramID, tokensKey, mintKey, payerKey),
		token.MintTo(token.ProgramID, mintKey, tokensKey, payerKey, amount),
	)
	if err != nil {
		return address.Address{}, address.Address{}, err
	}
	fmt.Fprintf(s.out, "mint: %s\n", mintKey)
	fmt.Fprintf(s.out, "token account: %s\n", tokensKey)
	return mintKey, tokensKey, nil
}

func (s *simulator) printPayload(label string, buffer address.Address) error {
	acct, ok := s.ledger.Account(buffer)
	if !ok {
		return fmt.Errorf("buffer %s does not exist", buffer)
	}
	fmt.Fprintf(s.out, "buffer: %s\n", buffer)
	fmt.Fprintf(s.out, "%s: %s\n", label, echo.BufferPayload(acct.Data))
	return nil
}

func (s *simulator) inspect(args []string) error {
	if len(args) != 1 {
		return errors.New("inspect takes exactly one address")
	}
	key, err := address.FromBase58(args[0])
	if err != nil {
		return err
	}
	acct, proof, err := s.ledger.ProveAccount(key)
	if err != nil {
		return err
	}
	root, err := s.ledger.StateRoot()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "address:    %s\n", key)
	fmt.Fprintf(s.out, "owner:      %s\n", acct.Owner)
	fmt.Fprintf(s.out, "lamports:   %d\n", acct.Lamports)
	fmt.Fprintf(s.out, "executable: %t\n", acct.Executable)
	fmt.Fprintf(s.out, "data:       %s\n", hex.EncodeToString(acct.Data))
	fmt.Fprintf(s.out, "state root: %s\n", hex.EncodeToString(root[:]))
	fmt.Fprintf(s.out, "proof:      leaf %d, %d nodes, valid: %t\n",
		proof.Index, len(proof.Nodes), proof.VerifyInclusion(root, key, &acct))
	return nil
}
